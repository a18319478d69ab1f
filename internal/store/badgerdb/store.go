// Package badgerdb implements store.Store on an embedded Badger database.
package badgerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/studytrack/studytrack-server/internal/domain"
	"github.com/studytrack/studytrack-server/internal/store"
)

const (
	prefixGoal     = "goal:"
	prefixSession  = "session:"
	prefixResource = "resource:"
	prefixProfile  = "profile:"
	prefixSettings = "settings:"
	prefixRole     = "role:"

	sequenceKey       = "meta:insert-seq"
	sequenceBandwidth = 256
)

var _ store.Store = (*Store)(nil)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	seq    *badger.Sequence
	logger *slog.Logger

	goals     *collection[domain.Goal]
	sessions  *collection[domain.StudySession]
	resources *collection[domain.Resource]
}

// New opens (or creates) a Badger database at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	s, err := open(opts, logger)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("Badger database opened", "path", path)
	}
	return s, nil
}

// NewInMemory opens a Badger database that lives only in memory.
// Used by tests and STORE_BACKEND=memory.
func NewInMemory(logger *slog.Logger) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Store, error) {
	opts.Logger = nil // Disable Badger's internal logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceBandwidth)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open insert sequence: %w", err)
	}

	s := &Store{db: db, seq: seq, logger: logger}
	s.goals = newCollection(s, prefixGoal, func(g *domain.Goal) string { return g.Title })
	s.sessions = newCollection(s, prefixSession, func(ss *domain.StudySession) string { return ss.ID })
	s.resources = newCollection(s, prefixResource, func(r *domain.Resource) string { return r.Title })

	return s, nil
}

// Close releases the sequence lease and closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	seqErr := s.seq.Release()
	return errors.Join(seqErr, s.db.Close())
}

// Ping reports whether the database is open and readable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return s.db.View(func(*badger.Txn) error { return nil })
}

// ListIdentities returns every identity owning a goal or resource, sorted.
func (s *Store) ListIdentities(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	for _, prefix := range []string{prefixGoal, prefixResource} {
		if err := s.scanIdentities(ctx, prefix, seen); err != nil {
			return nil, err
		}
	}
	return sortedKeys(seen), nil
}

func (s *Store) nextSeq() (uint64, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("next insert sequence: %w", err)
	}
	return n, nil
}

// get retrieves a value by key, translating a missing key to store.ErrNotFound.
func (s *Store) get(ctx context.Context, key []byte, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// set stores a value by key, replacing whatever was there.
func (s *Store) set(ctx context.Context, key []byte, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}
