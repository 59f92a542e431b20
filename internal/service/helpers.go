package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/repository"
	"golang.org/x/sync/errgroup"
)

// loadStagesWithTasks reads stages and tasks concurrently and joins them in
// memory. The result is sorted explicitly so it never depends on which read
// finished first.
func loadStagesWithTasks(ctx context.Context, stages repository.StageRepo, tasks repository.TaskRepo) ([]*domain.Stage, error) {
	var (
		stageList []*domain.Stage
		taskList  []*domain.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stageList, err = stages.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		taskList, err = tasks.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return joinStageTasks(stageList, taskList), nil
}

// joinStageTasks attaches tasks to their stages. Stages are ordered by
// (number, id) and each task list by (position, id). Tasks whose stage is
// not in stages are dropped.
func joinStageTasks(stages []*domain.Stage, tasks []*domain.Task) []*domain.Stage {
	byID := make(map[int64]*domain.Stage, len(stages))
	for _, s := range stages {
		s.Tasks = make([]*domain.Task, 0)
		byID[s.ID] = s
	}
	for _, t := range tasks {
		if s, ok := byID[t.StageID]; ok {
			s.Tasks = append(s.Tasks, t)
		}
	}

	slices.SortFunc(stages, func(a, b *domain.Stage) int {
		return cmp.Or(cmp.Compare(a.Number, b.Number), cmp.Compare(a.ID, b.ID))
	})
	for _, s := range stages {
		slices.SortFunc(s.Tasks, func(a, b *domain.Task) int {
			return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.ID, b.ID))
		})
	}
	return stages
}

// insertStages writes stages and their tasks through tx in slice order,
// keeping each stage's number and each task's position.
func insertStages(ctx context.Context, tx db.DBTX, stages []*domain.Stage) error {
	txStages := repository.NewSQLStageRepo(tx)
	txTasks := repository.NewSQLTaskRepo(tx)

	for _, s := range stages {
		if err := txStages.Insert(ctx, s); err != nil {
			return err
		}
		for _, t := range s.Tasks {
			t.StageID = s.ID
			if err := txTasks.Insert(ctx, t); err != nil {
				return fmt.Errorf("stage %q: %w", s.Name, err)
			}
		}
	}
	return nil
}

// clearAll deletes every task and stage through tx.
func clearAll(ctx context.Context, tx db.DBTX) error {
	txStages := repository.NewSQLStageRepo(tx)
	if err := txStages.LockNumbering(ctx); err != nil {
		return err
	}
	if err := repository.NewSQLTaskRepo(tx).DeleteAll(ctx); err != nil {
		return err
	}
	return txStages.DeleteAll(ctx)
}
