package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return newTestStore(t)
	})
}

func TestOpen(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()

	var journalMode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("expected wal, got %s", journalMode)
	}

	for _, table := range []string{"goals", "study_sessions", "resources", "profiles", "user_settings", "role_assignments"} {
		var name string
		err := s.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}
}

func TestOpen_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	s, err := Open(dbPath, nil)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.CreateGoal(ctx, "alice", &domain.Goal{Title: "Learn Go", Category: "Other", Priority: domain.PriorityLow}); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	s.Close()

	s, err = Open(dbPath, nil)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	if _, err := s.GetGoal(ctx, "alice", "Learn Go"); err != nil {
		t.Errorf("goal lost across reopen: %v", err)
	}
}

func TestConcurrentWritersAcrossIdentities(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	identities := []string{"alice", "bob", "carol", "dave"}
	for _, id := range identities {
		if err := s.CreateGoal(ctx, id, &domain.Goal{Title: "g", Category: "Other", Priority: domain.PriorityLow}); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(identities)*20)
	for _, id := range identities {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				_, err := s.UpdateGoal(ctx, id, "g", func(g *domain.Goal) error {
					g.Description += "x"
					return nil
				})
				if err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("update failed: %v", err)
	}

	g, err := s.GetGoal(ctx, "bob", "g")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(g.Description) != 20 {
		t.Errorf("expected 20 updates, got %d", len(g.Description))
	}
}

func TestCreateStudySession_DuplicateID(t *testing.T) {
	s := newTestStore(t)
	defer s.Close()
	ctx := context.Background()

	ss := &domain.StudySession{ID: "ses-1", Subject: "Go", Date: "2024-06-10", DurationMinutes: 5}
	if err := s.CreateStudySession(ctx, "alice", ss); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.CreateStudySession(ctx, "alice", ss); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
}
