package badgerdb

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/studytrack/studytrack-server/internal/domain"
)

// GetProfile returns the identity's profile, or store.ErrNotFound.
func (s *Store) GetProfile(ctx context.Context, identity string) (*domain.Profile, error) {
	var p domain.Profile
	if err := s.get(ctx, singletonKey(prefixProfile, identity), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile creates or replaces the profile.
func (s *Store) SaveProfile(ctx context.Context, profile *domain.Profile) error {
	return s.set(ctx, singletonKey(prefixProfile, profile.Identity), profile)
}

// GetSettings returns the identity's saved settings, or store.ErrNotFound.
func (s *Store) GetSettings(ctx context.Context, identity string) (*domain.UserSettings, error) {
	var us domain.UserSettings
	if err := s.get(ctx, singletonKey(prefixSettings, identity), &us); err != nil {
		return nil, err
	}
	return &us, nil
}

// SaveSettings creates or replaces the settings.
func (s *Store) SaveSettings(ctx context.Context, settings *domain.UserSettings) error {
	return s.set(ctx, singletonKey(prefixSettings, settings.Identity), settings)
}

// GetRole returns the explicit role assignment, or store.ErrNotFound.
func (s *Store) GetRole(ctx context.Context, identity string) (*domain.RoleAssignment, error) {
	var a domain.RoleAssignment
	if err := s.get(ctx, singletonKey(prefixRole, identity), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// SetRole creates or replaces a role assignment.
func (s *Store) SetRole(ctx context.Context, assignment *domain.RoleAssignment) error {
	return s.set(ctx, singletonKey(prefixRole, assignment.Identity), assignment)
}

// ListRoles returns every explicit assignment ordered by identity.
func (s *Store) ListRoles(ctx context.Context) ([]*domain.RoleAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*domain.RoleAssignment
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixRole)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var a domain.RoleAssignment
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &a)
			}); err != nil {
				return fmt.Errorf("failed to unmarshal role: %w", err)
			}
			out = append(out, &a)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(out, func(a, b *domain.RoleAssignment) int { return cmp.Compare(a.Identity, b.Identity) })
	return out, nil
}
