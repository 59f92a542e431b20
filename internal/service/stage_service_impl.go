package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/repository"
)

type stageService struct {
	stages   repository.StageRepo
	tasks    repository.TaskRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewStageService(stages repository.StageRepo, tasks repository.TaskRepo, uow db.UnitOfWork, observers ...UseCaseObserver) StageService {
	return &stageService{
		stages:   stages,
		tasks:    tasks,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *stageService) ListWithTasks(ctx context.Context) ([]*domain.Stage, error) {
	return loadStagesWithTasks(ctx, s.stages, s.tasks)
}

// Create appends a new pending stage at the end of the order. Blank task
// texts are skipped; the rest get positions 0..k-1 in the given order.
func (s *stageService) Create(ctx context.Context, stage *domain.Stage, taskTexts []string) (created *domain.Stage, err error) {
	fields := map[string]any{"name": stage.Name}
	defer observe(ctx, s.observer, "create-stage", time.Now(), fields, &err)

	stage.Name = strings.TrimSpace(stage.Name)
	if stage.Name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}
	stage.Icon = domain.NonEmptyOr(stage.Icon, domain.DefaultStageIcon)
	stage.Status = domain.StagePending
	stage.Progress = 0
	now := time.Now().UTC()
	stage.CreatedAt = now
	stage.UpdatedAt = now

	stage.Tasks = make([]*domain.Task, 0, len(taskTexts))
	for _, text := range taskTexts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		stage.Tasks = append(stage.Tasks, &domain.Task{
			Text:      text,
			Position:  len(stage.Tasks),
			CreatedAt: now,
		})
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStages := repository.NewSQLStageRepo(tx)
		if err := txStages.LockNumbering(ctx); err != nil {
			return err
		}
		if err := txStages.Create(ctx, stage); err != nil {
			return err
		}
		txTasks := repository.NewSQLTaskRepo(tx)
		for _, t := range stage.Tasks {
			t.StageID = stage.ID
			if err := txTasks.Insert(ctx, t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["id"] = stage.ID
	fields["number"] = stage.Number
	fields["task_count"] = len(stage.Tasks)
	return stage, nil
}

func (s *stageService) Update(ctx context.Context, id int64, patch domain.StagePatch) (changes int64, err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "update-stage", time.Now(), fields, &err)

	changes, err = s.stages.Update(ctx, id, patch)
	fields["changes"] = changes
	return changes, err
}

// Delete removes the stage's tasks, the stage and renumbers the remaining
// stages in one transaction. Unknown ids report zero changes and leave the
// numbering untouched.
func (s *stageService) Delete(ctx context.Context, id int64) (changes int64, err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "delete-stage", time.Now(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStages := repository.NewSQLStageRepo(tx)
		if err := txStages.LockNumbering(ctx); err != nil {
			return err
		}

		removed, err := repository.NewSQLTaskRepo(tx).DeleteByStage(ctx, id)
		if err != nil {
			return err
		}
		fields["tasks_removed"] = removed

		changes, err = txStages.Delete(ctx, id)
		if err != nil {
			return err
		}
		if changes == 0 {
			return nil
		}

		renumbered, err := txStages.Renumber(ctx)
		if err != nil {
			return err
		}
		fields["renumbered"] = renumbered
		return nil
	})
	if err != nil {
		return 0, err
	}
	fields["changes"] = changes
	return changes, nil
}
