package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
)

// SQLTaskRepo implements TaskRepo over SQLite or PostgreSQL.
type SQLTaskRepo struct {
	db db.DBTX
}

// NewSQLTaskRepo creates a new SQLTaskRepo.
func NewSQLTaskRepo(conn db.DBTX) *SQLTaskRepo {
	return &SQLTaskRepo{db: conn}
}

const taskColumns = `id, stage_id, text, completed, position, created_at`

func (r *SQLTaskRepo) Add(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (stage_id, text, completed, position, created_at)
		SELECT CAST(? AS BIGINT), CAST(? AS TEXT), FALSE, COALESCE(MAX(position), -1) + 1, CAST(? AS TEXT)
		FROM tasks WHERE stage_id = ?
		RETURNING id, position`
	err := r.db.QueryRowContext(ctx, query,
		t.StageID,
		t.Text,
		formatTime(t.CreatedAt),
		t.StageID,
	).Scan(&t.ID, &t.Position)
	if err != nil {
		return fmt.Errorf("adding task to stage %d: %w", t.StageID, err)
	}
	t.Completed = false
	return nil
}

func (r *SQLTaskRepo) Insert(ctx context.Context, t *domain.Task) error {
	query := `INSERT INTO tasks (stage_id, text, completed, position, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		t.StageID,
		t.Text,
		t.Completed,
		t.Position,
		formatTime(t.CreatedAt),
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLTaskRepo) ListAll(ctx context.Context) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY stage_id, position, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// Toggle flips the flag and reads the result back from the updated row, so a
// concurrent flip is reflected rather than guessed.
func (r *SQLTaskRepo) Toggle(ctx context.Context, id int64) (int64, bool, error) {
	var completed bool
	err := r.db.QueryRowContext(ctx,
		`UPDATE tasks SET completed = NOT completed WHERE id = ? RETURNING completed`, id,
	).Scan(&completed)
	if err != nil {
		if isNoRows(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("toggling task: %w", err)
	}
	return 1, completed, nil
}

func (r *SQLTaskRepo) UpdateText(ctx context.Context, id int64, text string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET text = ? WHERE id = ?`, text, id)
	if err != nil {
		return 0, fmt.Errorf("updating task: %w", err)
	}
	return rowsAffected(res, "updating task")
}

func (r *SQLTaskRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting task: %w", err)
	}
	return rowsAffected(res, "deleting task")
}

func (r *SQLTaskRepo) DeleteByStage(ctx context.Context, stageID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE stage_id = ?`, stageID)
	if err != nil {
		return 0, fmt.Errorf("deleting tasks of stage %d: %w", stageID, err)
	}
	return rowsAffected(res, "deleting stage tasks")
}

func (r *SQLTaskRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	return nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	var createdAt string

	if err := row.Scan(&t.ID, &t.StageID, &t.Text, &t.Completed, &t.Position, &createdAt); err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	var err error
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return &t, nil
}
