package badgerdb

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/studytrack/studytrack-server/internal/store"
)

// record is the stored form of a partitioned value. Seq is assigned once at
// creation and orders List results.
type record[T any] struct {
	Seq   uint64 `json:"seq"`
	Value *T     `json:"value"`
}

// collection provides CRUD for one record type inside per-identity partitions.
type collection[T any] struct {
	store  *Store
	prefix string
	keyOf  func(*T) string
}

func newCollection[T any](s *Store, prefix string, keyOf func(*T) string) *collection[T] {
	return &collection[T]{store: s, prefix: prefix, keyOf: keyOf}
}

// Create stores value under its natural key.
// Returns store.ErrAlreadyExists if the key is taken in the identity's partition.
func (c *collection[T]) Create(ctx context.Context, identity string, value *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	seq, err := c.store.nextSeq()
	if err != nil {
		return err
	}

	data, err := json.Marshal(record[T]{Seq: seq, Value: value})
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	key := recordKey(c.prefix, identity, c.keyOf(value))
	return c.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return store.ErrAlreadyExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("failed to check existing key: %w", err)
		}
		return txn.Set(key, data)
	})
}

// Get returns the record with the natural key, or store.ErrNotFound.
func (c *collection[T]) Get(ctx context.Context, identity, key string) (*T, error) {
	var rec record[T]
	if err := c.store.get(ctx, recordKey(c.prefix, identity, key), &rec); err != nil {
		return nil, err
	}
	return rec.Value, nil
}

// Update applies mutate to the stored record inside a single transaction.
// The record keeps its sequence number, and therefore its list position.
func (c *collection[T]) Update(ctx context.Context, identity, key string, mutate func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	k := recordKey(c.prefix, identity, key)
	var rec record[T]

	err := c.store.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return store.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}

		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}

		if err := mutate(rec.Value); err != nil {
			return err
		}
		if c.keyOf(rec.Value) != key {
			return fmt.Errorf("update must not change natural key %q", key)
		}

		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		return txn.Set(k, data)
	})
	if err != nil {
		return nil, err
	}

	return rec.Value, nil
}

// Delete removes the record with the natural key, or returns store.ErrNotFound.
func (c *collection[T]) Delete(ctx context.Context, identity, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	k := recordKey(c.prefix, identity, key)
	return c.store.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(k); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return store.ErrNotFound
			}
			return fmt.Errorf("failed to get key: %w", err)
		}
		return txn.Delete(k)
	})
}

// DeleteWhere removes every record in the partition for which match returns
// true and reports how many were removed.
func (c *collection[T]) DeleteWhere(ctx context.Context, identity string, match func(*T) bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	removed := 0
	err := c.store.db.Update(func(txn *badger.Txn) error {
		var doomed [][]byte
		err := c.scan(txn, identity, func(key []byte, rec *record[T]) error {
			if match(rec.Value) {
				doomed = append(doomed, key)
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, key := range doomed {
			if err := txn.Delete(key); err != nil {
				return fmt.Errorf("failed to delete key: %w", err)
			}
		}
		removed = len(doomed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// List returns the identity's records in insertion order.
func (c *collection[T]) List(ctx context.Context, identity string) ([]*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []record[T]
	err := c.store.db.View(func(txn *badger.Txn) error {
		return c.scan(txn, identity, func(_ []byte, rec *record[T]) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records = append(records, *rec)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(records, func(a, b record[T]) int { return cmp.Compare(a.Seq, b.Seq) })

	out := make([]*T, len(records))
	for i := range records {
		out[i] = records[i].Value
	}
	return out, nil
}

// scan visits every record in the identity's partition. The key passed to fn
// is a copy and stays valid after the iterator moves on.
func (c *collection[T]) scan(txn *badger.Txn, identity string, fn func(key []byte, rec *record[T]) error) error {
	prefix := partitionPrefix(c.prefix, identity)

	opts := badger.DefaultIteratorOptions
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		item := it.Item()
		var rec record[T]
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		}); err != nil {
			return fmt.Errorf("failed to unmarshal record: %w", err)
		}
		if err := fn(item.KeyCopy(nil), &rec); err != nil {
			return err
		}
	}
	return nil
}
