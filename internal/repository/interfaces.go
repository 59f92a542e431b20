package repository

import (
	"context"

	"github.com/alexanderramin/stagetrack/internal/domain"
)

type StageRepo interface {
	// LockNumbering must run first in any transaction that creates, deletes
	// or renumbers stages.
	LockNumbering(ctx context.Context) error
	// Create appends a stage after the current highest number and sets
	// s.ID and s.Number.
	Create(ctx context.Context, s *domain.Stage) error
	// Insert stores a stage with the number it already carries.
	Insert(ctx context.Context, s *domain.Stage) error
	ListAll(ctx context.Context) ([]*domain.Stage, error)
	Update(ctx context.Context, id int64, patch domain.StagePatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	// Renumber rewrites numbers to 1..N preserving (number, id) order.
	Renumber(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type TaskRepo interface {
	// Add appends a task to the end of its stage and sets t.ID and t.Position.
	Add(ctx context.Context, t *domain.Task) error
	// Insert stores a task with the position and completion it already carries.
	Insert(ctx context.Context, t *domain.Task) error
	ListAll(ctx context.Context) ([]*domain.Task, error)
	// Toggle flips completed and returns the stored value after the flip.
	Toggle(ctx context.Context, id int64) (changes int64, completed bool, err error)
	UpdateText(ctx context.Context, id int64, text string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteByStage(ctx context.Context, stageID int64) (int64, error)
	DeleteAll(ctx context.Context) error
}

type StatsRepo interface {
	Compute(ctx context.Context) (*domain.Stats, error)
}
