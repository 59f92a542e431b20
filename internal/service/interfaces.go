package service

import (
	"context"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/importer"
)

type StageService interface {
	// ListWithTasks returns every stage by number, each with its tasks by
	// position then id.
	ListWithTasks(ctx context.Context) ([]*domain.Stage, error)
	Create(ctx context.Context, s *domain.Stage, taskTexts []string) (*domain.Stage, error)
	Update(ctx context.Context, id int64, patch domain.StagePatch) (int64, error)
	// Delete removes the stage and its tasks and renumbers the survivors.
	Delete(ctx context.Context, id int64) (int64, error)
}

type TaskService interface {
	Add(ctx context.Context, stageID int64, text string) (*domain.Task, error)
	Toggle(ctx context.Context, id int64) (changes int64, completed bool, err error)
	UpdateText(ctx context.Context, id int64, text string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type StatsService interface {
	Compute(ctx context.Context) (*domain.Stats, error)
}

type TransferService interface {
	Export(ctx context.Context) (importer.Document, error)
	// Import replaces all stages and tasks with the document's contents and
	// returns the number of stages imported.
	Import(ctx context.Context, doc importer.Document) (int, error)
	// Reset replaces all data with the default template.
	Reset(ctx context.Context) error
}

type SchemaService interface {
	// SeedIfEmpty loads the default template when no stages exist and
	// reports whether it did.
	SeedIfEmpty(ctx context.Context) (bool, error)
}
