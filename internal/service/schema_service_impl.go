package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/repository"
	"github.com/alexanderramin/stagetrack/internal/seed"
)

type schemaService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewSchemaService(uow db.UnitOfWork, observers ...UseCaseObserver) SchemaService {
	return &schemaService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// SeedIfEmpty counts and seeds inside the same transaction so existing data
// is never overwritten.
func (s *schemaService) SeedIfEmpty(ctx context.Context) (seeded bool, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "seed", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStages := repository.NewSQLStageRepo(tx)
		if err := txStages.LockNumbering(ctx); err != nil {
			return err
		}
		n, err := txStages.Count(ctx)
		if err != nil {
			return err
		}
		fields["existing_stages"] = n
		if n > 0 {
			return nil
		}

		stages, err := seed.DefaultStages()
		if err != nil {
			return err
		}
		if err := insertStages(ctx, tx, stages); err != nil {
			return err
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seeding default data: %w", err)
	}
	fields["seeded"] = seeded
	return seeded, nil
}
