package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/domain"
)

// SQLStageRepo implements StageRepo over SQLite or PostgreSQL.
type SQLStageRepo struct {
	db db.DBTX
}

// NewSQLStageRepo creates a new SQLStageRepo.
func NewSQLStageRepo(conn db.DBTX) *SQLStageRepo {
	return &SQLStageRepo{db: conn}
}

const stageColumns = `id, number, name, icon, weeks, hours, cost, status, brief, description, progress, created_at, updated_at`

// LockNumbering serializes transactions that allocate or rewrite stage
// numbers. On PostgreSQL it takes a SHARE ROW EXCLUSIVE lock on stages,
// which conflicts with itself but not with plain reads, held until the
// transaction ends. SQLite transactions begin IMMEDIATE and already hold
// the single write lock, so it is a no-op there.
func (r *SQLStageRepo) LockNumbering(ctx context.Context) error {
	if r.db.Dialect() != db.DialectPostgres {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, `LOCK TABLE stages IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("locking stage numbering: %w", err)
	}
	return nil
}

func (r *SQLStageRepo) Create(ctx context.Context, s *domain.Stage) error {
	// The number is allocated in the same statement that inserts the row.
	query := `INSERT INTO stages (number, name, icon, weeks, hours, cost, status, brief, description, progress, created_at, updated_at)
		SELECT COALESCE(MAX(number), 0) + 1,
			CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS INTEGER), CAST(? AS BIGINT),
			CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS TEXT), CAST(? AS INTEGER), CAST(? AS TEXT), CAST(? AS TEXT)
		FROM stages
		RETURNING id, number`
	err := r.db.QueryRowContext(ctx, query,
		s.Name,
		s.Icon,
		s.Weeks,
		s.Hours,
		s.Cost,
		string(s.Status),
		s.Brief,
		s.Description,
		s.Progress,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	).Scan(&s.ID, &s.Number)
	if err != nil {
		return fmt.Errorf("inserting stage: %w", err)
	}
	return nil
}

func (r *SQLStageRepo) Insert(ctx context.Context, s *domain.Stage) error {
	query := `INSERT INTO stages (number, name, icon, weeks, hours, cost, status, brief, description, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		s.Number,
		s.Name,
		s.Icon,
		s.Weeks,
		s.Hours,
		s.Cost,
		string(s.Status),
		s.Brief,
		s.Description,
		s.Progress,
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("inserting stage %q: %w", s.Name, err)
	}
	return nil
}

func (r *SQLStageRepo) ListAll(ctx context.Context) ([]*domain.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages ORDER BY number, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	stages := make([]*domain.Stage, 0)
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, err
		}
		stages = append(stages, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stages: %w", err)
	}
	return stages, nil
}

// Update applies the non-nil fields of patch. Column names come from a fixed
// allowlist; nothing from the request is spliced into the SQL text.
func (r *SQLStageRepo) Update(ctx context.Context, id int64, patch domain.StagePatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, domain.NewValidationError("", "no valid fields to update")
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Brief != nil {
		add("brief", *patch.Brief)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Progress != nil {
		add("progress", *patch.Progress)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Icon != nil {
		add("icon", *patch.Icon)
	}
	if patch.Weeks != nil {
		add("weeks", *patch.Weeks)
	}
	if patch.Hours != nil {
		add("hours", *patch.Hours)
	}
	if patch.Cost != nil {
		add("cost", *patch.Cost)
	}
	add("updated_at", nowUTC())
	args = append(args, id)

	query := `UPDATE stages SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("updating stage: %w", err)
	}
	return rowsAffected(res, "updating stage")
}

func (r *SQLStageRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("deleting stage: %w", err)
	}
	return rowsAffected(res, "deleting stage")
}

// Renumber assigns every stage its dense rank by (number, id) in one
// statement, so no intermediate state with duplicate numbers is written row
// by row. Rows already at their rank are left alone.
func (r *SQLStageRepo) Renumber(ctx context.Context) (int64, error) {
	query := `UPDATE stages SET number = ranked.rn, updated_at = ?
		FROM (SELECT id, ROW_NUMBER() OVER (ORDER BY number, id) AS rn FROM stages) AS ranked
		WHERE stages.id = ranked.id AND stages.number <> ranked.rn`
	res, err := r.db.ExecContext(ctx, query, nowUTC())
	if err != nil {
		return 0, fmt.Errorf("renumbering stages: %w", err)
	}
	return rowsAffected(res, "renumbering stages")
}

func (r *SQLStageRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting stages: %w", err)
	}
	return n, nil
}

func (r *SQLStageRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM stages`); err != nil {
		return fmt.Errorf("clearing stages: %w", err)
	}
	return nil
}

func scanStage(row rowScanner) (*domain.Stage, error) {
	var s domain.Stage
	var status, createdAt, updatedAt string

	err := row.Scan(
		&s.ID, &s.Number, &s.Name, &s.Icon, &s.Weeks,
		&s.Hours, &s.Cost, &status, &s.Brief, &s.Description,
		&s.Progress, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	s.Status = domain.StageStatus(status)

	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
