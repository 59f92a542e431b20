package domain

import "time"

type StageStatus string

const (
	StagePending  StageStatus = "pending"
	StageProgress StageStatus = "progress"
	StageTesting  StageStatus = "testing"
	StageComplete StageStatus = "complete"
)

// DefaultStageIcon is used when a stage is created without an icon.
const DefaultStageIcon = "📋"

type Stage struct {
	ID          int64
	Number      int // dense 1-based rank across all stages
	Name        string
	Icon        string
	Weeks       string
	Hours       int
	Cost        int64
	Status      StageStatus
	Brief       string
	Description string
	Progress    int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tasks []*Task
}

// StagePatch carries a partial stage update. Nil fields are left untouched.
type StagePatch struct {
	Status      *string
	Brief       *string
	Description *string
	Progress    *int
	Name        *string
	Icon        *string
	Weeks       *string
	Hours       *int
	Cost        *int64
}

// IsEmpty reports whether the patch carries no recognized field.
func (p StagePatch) IsEmpty() bool {
	return p.Status == nil && p.Brief == nil && p.Description == nil &&
		p.Progress == nil && p.Name == nil && p.Icon == nil &&
		p.Weeks == nil && p.Hours == nil && p.Cost == nil
}

// CompletedTasks counts the stage's completed tasks.
func (s *Stage) CompletedTasks() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}
