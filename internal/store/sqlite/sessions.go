package sqlite

import (
	"context"
	"database/sql"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
)

// sessionColumns must match the scan order in scanStudySession.
const sessionColumns = `id, subject, date, duration_minutes, notes, created_at`

func scanStudySession(scanner interface{ Scan(dest ...any) error }) (*domain.StudySession, error) {
	var (
		ss        domain.StudySession
		notes     sql.NullString
		createdAt string
	)

	if err := scanner.Scan(&ss.ID, &ss.Subject, &ss.Date, &ss.DurationMinutes, &notes, &createdAt); err != nil {
		return nil, err
	}

	ss.Notes = stringPtr(notes)

	var err error
	if ss.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &ss, nil
}

// CreateStudySession inserts a session under its generated ID.
func (s *Store) CreateStudySession(ctx context.Context, identity string, ss *domain.StudySession) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO study_sessions (identity, `+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		identity, ss.ID, ss.Subject, ss.Date, ss.DurationMinutes, nullableString(ss.Notes), formatTime(ss.CreatedAt),
	)
	if isUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

// DeleteStudySession removes one session by ID, or returns store.ErrNotFound.
func (s *Store) DeleteStudySession(ctx context.Context, identity, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM study_sessions WHERE identity = ? AND id = ?`, identity, id)
	if err != nil {
		return err
	}
	return rowsAffectedOrNotFound(res)
}

// DeleteStudySessionsBySubject removes every session logged under subject.
func (s *Store) DeleteStudySessionsBySubject(ctx context.Context, identity, subject string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM study_sessions WHERE identity = ? AND subject = ?`, identity, subject)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// ListStudySessions returns the identity's sessions in insertion order.
func (s *Store) ListStudySessions(ctx context.Context, identity string) ([]*domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM study_sessions WHERE identity = ? ORDER BY seq`, identity)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.StudySession
	for rows.Next() {
		ss, err := scanStudySession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ss)
	}
	return out, rows.Err()
}
