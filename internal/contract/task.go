package contract

import "github.com/alexanderramin/stagetrack/internal/domain"

// TaskRequest is the body of POST /api/stages/{stageId}/tasks and
// PUT /api/tasks/{id}.
type TaskRequest struct {
	Text string `json:"text"`
}

// TaskResponse is the created task returned by POST /api/stages/{stageId}/tasks.
type TaskResponse struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

type ToggleResponse struct {
	Success   bool `json:"success"`
	Completed bool `json:"completed"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func NewTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{ID: t.ID, Text: t.Text, Completed: t.Completed, Position: t.Position}
}
