package testutil

import (
	"time"

	"github.com/alexanderramin/stagetrack/internal/domain"
)

// Stage options
type StageOption func(*domain.Stage)

func WithStageStatus(s domain.StageStatus) StageOption {
	return func(st *domain.Stage) {
		st.Status = s
	}
}

func WithProgress(p int) StageOption {
	return func(st *domain.Stage) {
		st.Progress = p
	}
}

func WithHours(h int) StageOption {
	return func(st *domain.Stage) {
		st.Hours = h
	}
}

func WithCost(c int64) StageOption {
	return func(st *domain.Stage) {
		st.Cost = c
	}
}

func WithNumber(n int) StageOption {
	return func(st *domain.Stage) {
		st.Number = n
	}
}

func WithIcon(icon string) StageOption {
	return func(st *domain.Stage) {
		st.Icon = icon
	}
}

func NewTestStage(name string, opts ...StageOption) *domain.Stage {
	now := time.Now().UTC()
	s := &domain.Stage{
		Name:        name,
		Icon:        domain.DefaultStageIcon,
		Weeks:       "1-2",
		Hours:       40,
		Cost:        1000,
		Status:      domain.StagePending,
		Brief:       name + " brief",
		Description: name + " description",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Task options
type TaskOption func(*domain.Task)

func WithCompleted(c bool) TaskOption {
	return func(t *domain.Task) {
		t.Completed = c
	}
}

func WithPosition(p int) TaskOption {
	return func(t *domain.Task) {
		t.Position = p
	}
}

func NewTestTask(stageID int64, text string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		StageID:   stageID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
