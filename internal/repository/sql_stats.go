package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
)

// SQLStatsRepo computes project-wide aggregates in a single query.
type SQLStatsRepo struct {
	db db.DBTX
}

func NewSQLStatsRepo(conn db.DBTX) *SQLStatsRepo {
	return &SQLStatsRepo{db: conn}
}

// Every aggregate is COALESCE'd so an empty store yields zeros. Statuses
// outside the four known labels count toward total_stages only.
const statsQuery = `SELECT
	s.total_stages, s.completed, s.in_progress, s.pending, s.testing,
	s.avg_progress, s.hours_worked, s.total_hours,
	t.total_tasks, t.completed_tasks
FROM
	(SELECT
		COUNT(*) AS total_stages,
		COALESCE(SUM(CASE WHEN status = 'complete' THEN 1 ELSE 0 END), 0) AS completed,
		COALESCE(SUM(CASE WHEN status = 'progress' THEN 1 ELSE 0 END), 0) AS in_progress,
		COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
		COALESCE(SUM(CASE WHEN status = 'testing' THEN 1 ELSE 0 END), 0) AS testing,
		CAST(COALESCE(AVG(progress), 0) AS DOUBLE PRECISION) AS avg_progress,
		CAST(COALESCE(SUM(hours * progress / 100.0), 0) AS DOUBLE PRECISION) AS hours_worked,
		COALESCE(SUM(hours), 0) AS total_hours
	FROM stages) AS s,
	(SELECT
		COUNT(*) AS total_tasks,
		COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed_tasks
	FROM tasks) AS t`

func (r *SQLStatsRepo) Compute(ctx context.Context) (*domain.Stats, error) {
	var st domain.Stats
	err := r.db.QueryRowContext(ctx, statsQuery).Scan(
		&st.TotalStages, &st.Completed, &st.InProgress, &st.Pending, &st.Testing,
		&st.AvgProgress, &st.HoursWorked, &st.TotalHours,
		&st.TotalTasks, &st.CompletedTasks,
	)
	if err != nil {
		return nil, fmt.Errorf("computing stats: %w", err)
	}
	return &st, nil
}
