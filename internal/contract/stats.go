package contract

import "github.com/alexanderramin/stagetrack/internal/domain"

// StatsResponse is the body of GET /api/stats.
type StatsResponse struct {
	TotalStages    int     `json:"total_stages"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	Pending        int     `json:"pending"`
	Testing        int     `json:"testing"`
	AvgProgress    float64 `json:"avg_progress"`
	HoursWorked    float64 `json:"hours_worked"`
	TotalHours     int     `json:"total_hours"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
}

func NewStatsResponse(s *domain.Stats) StatsResponse {
	return StatsResponse{
		TotalStages:    s.TotalStages,
		Completed:      s.Completed,
		InProgress:     s.InProgress,
		Pending:        s.Pending,
		Testing:        s.Testing,
		AvgProgress:    s.AvgProgress,
		HoursWorked:    s.HoursWorked,
		TotalHours:     s.TotalHours,
		TotalTasks:     s.TotalTasks,
		CompletedTasks: s.CompletedTasks,
	}
}
