package contract

import (
	"time"

	"github.com/alexanderramin/stagetrack/internal/domain"
)

// StageResponse is a stage as returned by GET /api/stages and POST /api/stages.
type StageResponse struct {
	ID          int64         `json:"id"`
	Number      int           `json:"number"`
	Name        string        `json:"name"`
	Icon        string        `json:"icon"`
	Weeks       string        `json:"weeks"`
	Hours       int           `json:"hours"`
	Cost        int64         `json:"cost"`
	Status      string        `json:"status"`
	Brief       string        `json:"brief"`
	Description string        `json:"description"`
	Progress    int           `json:"progress"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Tasks       []TaskSummary `json:"tasks"`
}

// TaskSummary is the nested task shape inside a StageResponse.
type TaskSummary struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// CreateStageRequest is the body of POST /api/stages. Status and progress
// are not accepted: new stages start pending at 0%.
type CreateStageRequest struct {
	Name        string   `json:"name"`
	Icon        string   `json:"icon,omitempty"`
	Weeks       string   `json:"weeks"`
	Hours       int      `json:"hours"`
	Cost        int64    `json:"cost"`
	Brief       string   `json:"brief"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks,omitempty"`
}

// UpdateStageRequest is the body of PUT /api/stages/{id}. Absent fields are
// left untouched; unknown keys are ignored. A JSON null is treated as absent
// since no stage column is nullable.
type UpdateStageRequest struct {
	Status      *string `json:"status,omitempty"`
	Brief       *string `json:"brief,omitempty"`
	Description *string `json:"description,omitempty"`
	Progress    *int    `json:"progress,omitempty"`
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Weeks       *string `json:"weeks,omitempty"`
	Hours       *int    `json:"hours,omitempty"`
	Cost        *int64  `json:"cost,omitempty"`
}

// ChangesResponse reports how many rows a mutation touched. Zero means the
// id did not exist.
type ChangesResponse struct {
	Success bool  `json:"success"`
	Changes int64 `json:"changes"`
}

func (r CreateStageRequest) Stage() *domain.Stage {
	return &domain.Stage{
		Name:        r.Name,
		Icon:        r.Icon,
		Weeks:       r.Weeks,
		Hours:       r.Hours,
		Cost:        r.Cost,
		Brief:       r.Brief,
		Description: r.Description,
	}
}

func (r UpdateStageRequest) Patch() domain.StagePatch {
	return domain.StagePatch{
		Status:      r.Status,
		Brief:       r.Brief,
		Description: r.Description,
		Progress:    r.Progress,
		Name:        r.Name,
		Icon:        r.Icon,
		Weeks:       r.Weeks,
		Hours:       r.Hours,
		Cost:        r.Cost,
	}
}

func NewStageResponse(s *domain.Stage) StageResponse {
	resp := StageResponse{
		ID:          s.ID,
		Number:      s.Number,
		Name:        s.Name,
		Icon:        s.Icon,
		Weeks:       s.Weeks,
		Hours:       s.Hours,
		Cost:        s.Cost,
		Status:      string(s.Status),
		Brief:       s.Brief,
		Description: s.Description,
		Progress:    s.Progress,
		CreatedAt:   formatTimestamp(s.CreatedAt),
		UpdatedAt:   formatTimestamp(s.UpdatedAt),
		Tasks:       make([]TaskSummary, 0, len(s.Tasks)),
	}
	for _, t := range s.Tasks {
		resp.Tasks = append(resp.Tasks, TaskSummary{ID: t.ID, Text: t.Text, Completed: t.Completed})
	}
	return resp
}

func NewStageResponses(stages []*domain.Stage) []StageResponse {
	out := make([]StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, NewStageResponse(s))
	}
	return out
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
