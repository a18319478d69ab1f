package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
)

// goalColumns must match the scan order in scanGoal.
const goalColumns = `title, description, category, priority, target_date, completed, created_at, updated_at`

func scanGoal(scanner interface{ Scan(dest ...any) error }) (*domain.Goal, error) {
	var (
		g          domain.Goal
		priority   string
		targetDate sql.NullString
		completed  int
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(&g.Title, &g.Description, &g.Category, &priority, &targetDate, &completed, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	g.Priority = domain.Priority(priority)
	g.TargetDate = targetDate.String
	g.Completed = completed != 0

	if g.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}

// CreateGoal inserts a goal. Returns store.ErrAlreadyExists if the title is taken.
func (s *Store) CreateGoal(ctx context.Context, identity string, g *domain.Goal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO goals (identity, `+goalColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		identity, g.Title, g.Description, g.Category, string(g.Priority), nullString(g.TargetDate),
		boolToInt(g.Completed), formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetGoal returns the goal with the title, or store.ErrNotFound.
func (s *Store) GetGoal(ctx context.Context, identity, title string) (*domain.Goal, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE identity = ? AND title = ?`, identity, title)
	g, err := scanGoal(row)
	if err != nil {
		return nil, notFound(err)
	}
	return g, nil
}

// UpdateGoal reads, mutates and rewrites the goal in one transaction.
// The row keeps its seq, so list order is unchanged.
func (s *Store) UpdateGoal(ctx context.Context, identity, title string, mutate func(*domain.Goal) error) (*domain.Goal, error) {
	var g *domain.Goal
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		g, err = scanGoal(tx.QueryRowContext(ctx,
			`SELECT `+goalColumns+` FROM goals WHERE identity = ? AND title = ?`, identity, title))
		if err != nil {
			return notFound(err)
		}

		if err := mutate(g); err != nil {
			return err
		}
		if g.Title != title {
			return fmt.Errorf("update must not change natural key %q", title)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE goals SET description = ?, category = ?, priority = ?, target_date = ?,
				completed = ?, created_at = ?, updated_at = ?
			WHERE identity = ? AND title = ?`,
			g.Description, g.Category, string(g.Priority), nullString(g.TargetDate),
			boolToInt(g.Completed), formatTime(g.CreatedAt), formatTime(g.UpdatedAt),
			identity, title,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return g, nil
}

// DeleteGoal removes the goal with the title, or returns store.ErrNotFound.
func (s *Store) DeleteGoal(ctx context.Context, identity, title string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE identity = ? AND title = ?`, identity, title)
	if err != nil {
		return err
	}
	return rowsAffectedOrNotFound(res)
}

// ListGoals returns the identity's goals in insertion order.
func (s *Store) ListGoals(ctx context.Context, identity string) ([]*domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE identity = ? ORDER BY seq`, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
