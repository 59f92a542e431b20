package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/importer"
	"github.com/alexanderramin/stagetrack/internal/repository"
	"github.com/alexanderramin/stagetrack/internal/seed"
)

type transferService struct {
	stages   repository.StageRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTransferService(stages repository.StageRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TransferService {
	return &transferService{
		stages:   stages,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transferService) Export(ctx context.Context) (importer.Document, error) {
	stages, err := loadStagesWithTasks(ctx, s.stages, s.tasks)
	if err != nil {
		return nil, fmt.Errorf("exporting: %w", err)
	}
	return importer.FromStages(stages), nil
}

// Import clears the store and inserts the document in document order inside
// one transaction, then renumbers so numbers are dense. Any failure leaves
// the previous data in place.
func (s *transferService) Import(ctx context.Context, doc importer.Document) (count int, err error) {
	fields := map[string]any{"stages": len(doc)}
	defer observe(ctx, s.observer, "import", time.Now(), fields, &err)

	stages := importer.ToStages(doc)
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := clearAll(ctx, tx); err != nil {
			return err
		}
		if err := insertStages(ctx, tx, stages); err != nil {
			return err
		}
		renumbered, err := repository.NewSQLStageRepo(tx).Renumber(ctx)
		fields["renumbered"] = renumbered
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("importing: %w", err)
	}
	return len(stages), nil
}

// Reset clears the store and loads the default template in one transaction.
// It returns only after the reseed is committed.
func (s *transferService) Reset(ctx context.Context) (err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "reset", time.Now(), fields, &err)

	stages, err := seed.DefaultStages()
	if err != nil {
		return err
	}
	fields["stages"] = len(stages)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := clearAll(ctx, tx); err != nil {
			return err
		}
		return insertStages(ctx, tx, stages)
	})
	if err != nil {
		return fmt.Errorf("resetting: %w", err)
	}
	return nil
}
