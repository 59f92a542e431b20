package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/stagetrack/internal/domain"
	"github.com/alexanderramin/stagetrack/internal/repository"
)

type taskService struct {
	tasks    repository.TaskRepo
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, observers ...UseCaseObserver) TaskService {
	return &taskService{tasks: tasks, observer: useCaseObserverOrNoop(observers)}
}

func (s *taskService) Add(ctx context.Context, stageID int64, text string) (task *domain.Task, err error) {
	fields := map[string]any{"stage_id": stageID}
	defer observe(ctx, s.observer, "add-task", time.Now(), fields, &err)

	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text", "is required")
	}
	task = &domain.Task{StageID: stageID, Text: text, CreatedAt: time.Now().UTC()}
	if err = s.tasks.Add(ctx, task); err != nil {
		return nil, err
	}
	fields["id"] = task.ID
	fields["position"] = task.Position
	return task, nil
}

func (s *taskService) Toggle(ctx context.Context, id int64) (changes int64, completed bool, err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "toggle-task", time.Now(), fields, &err)

	changes, completed, err = s.tasks.Toggle(ctx, id)
	fields["changes"] = changes
	fields["completed"] = completed
	return changes, completed, err
}

func (s *taskService) UpdateText(ctx context.Context, id int64, text string) (changes int64, err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "update-task", time.Now(), fields, &err)

	if strings.TrimSpace(text) == "" {
		return 0, domain.NewValidationError("text", "is required")
	}
	changes, err = s.tasks.UpdateText(ctx, id, text)
	fields["changes"] = changes
	return changes, err
}

func (s *taskService) Delete(ctx context.Context, id int64) (changes int64, err error) {
	fields := map[string]any{"id": id}
	defer observe(ctx, s.observer, "delete-task", time.Now(), fields, &err)

	changes, err = s.tasks.Delete(ctx, id)
	fields["changes"] = changes
	return changes, err
}
