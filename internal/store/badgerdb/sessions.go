package badgerdb

import (
	"context"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// CreateStudySession stores a session under its generated ID.
func (s *Store) CreateStudySession(ctx context.Context, identity string, session *domain.StudySession) error {
	return s.sessions.Create(ctx, identity, session)
}

// DeleteStudySession removes one session by ID, or returns store.ErrNotFound.
func (s *Store) DeleteStudySession(ctx context.Context, identity, id string) error {
	return s.sessions.Delete(ctx, identity, id)
}

// DeleteStudySessionsBySubject removes every session logged under subject.
func (s *Store) DeleteStudySessionsBySubject(ctx context.Context, identity, subject string) (int, error) {
	return s.sessions.DeleteWhere(ctx, identity, func(ss *domain.StudySession) bool {
		return ss.Subject == subject
	})
}

// ListStudySessions returns the identity's sessions in insertion order.
func (s *Store) ListStudySessions(ctx context.Context, identity string) ([]*domain.StudySession, error) {
	return s.sessions.List(ctx, identity)
}
