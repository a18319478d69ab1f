package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
)

// resourceColumns must match the scan order in scanResource.
const resourceColumns = `title, url, category, notes, created_at, updated_at`

func scanResource(scanner interface{ Scan(dest ...any) error }) (*domain.Resource, error) {
	var (
		r         domain.Resource
		notes     sql.NullString
		createdAt string
		updatedAt string
	)

	if err := scanner.Scan(&r.Title, &r.URL, &r.Category, &notes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	r.Notes = stringPtr(notes)

	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResource inserts a resource. Returns store.ErrAlreadyExists if the title is taken.
func (s *Store) CreateResource(ctx context.Context, identity string, r *domain.Resource) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resources (identity, `+resourceColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		identity, r.Title, r.URL, r.Category, nullableString(r.Notes),
		formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// GetResource returns the resource with the title, or store.ErrNotFound.
func (s *Store) GetResource(ctx context.Context, identity, title string) (*domain.Resource, error) {
	r, err := scanResource(s.db.QueryRowContext(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE identity = ? AND title = ?`, identity, title))
	if err != nil {
		return nil, notFound(err)
	}
	return r, nil
}

// UpdateResource reads, mutates and rewrites the resource in one transaction.
func (s *Store) UpdateResource(ctx context.Context, identity, title string, mutate func(*domain.Resource) error) (*domain.Resource, error) {
	var r *domain.Resource
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		r, err = scanResource(tx.QueryRowContext(ctx,
			`SELECT `+resourceColumns+` FROM resources WHERE identity = ? AND title = ?`, identity, title))
		if err != nil {
			return notFound(err)
		}

		if err := mutate(r); err != nil {
			return err
		}
		if r.Title != title {
			return fmt.Errorf("update must not change natural key %q", title)
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE resources SET url = ?, category = ?, notes = ?, created_at = ?, updated_at = ?
			WHERE identity = ? AND title = ?`,
			r.URL, r.Category, nullableString(r.Notes), formatTime(r.CreatedAt), formatTime(r.UpdatedAt),
			identity, title,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// DeleteResource removes the resource with the title, or returns store.ErrNotFound.
func (s *Store) DeleteResource(ctx context.Context, identity, title string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM resources WHERE identity = ? AND title = ?`, identity, title)
	if err != nil {
		return err
	}
	return rowsAffectedOrNotFound(res)
}

// ListResources returns the identity's resources in insertion order.
func (s *Store) ListResources(ctx context.Context, identity string) ([]*domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+resourceColumns+` FROM resources WHERE identity = ? ORDER BY seq`, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Resource
	for rows.Next() {
		r, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
