package badgerdb

import (
	"context"
	"net/url"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
)

// Keys have the form prefix + escape(identity) + ":" + escape(natural key).
// QueryEscape encodes ':' so neither part can forge a separator, and the
// partition prefix of one identity is never a prefix of another's.

func partitionPrefix(prefix, identity string) []byte {
	return []byte(prefix + url.QueryEscape(identity) + ":")
}

func recordKey(prefix, identity, key string) []byte {
	return []byte(prefix + url.QueryEscape(identity) + ":" + url.QueryEscape(key))
}

func singletonKey(prefix, identity string) []byte {
	return []byte(prefix + url.QueryEscape(identity))
}

// identityFromKey extracts the identity part of a partitioned or singleton key.
func identityFromKey(prefix string, key []byte) (string, bool) {
	rest, ok := strings.CutPrefix(string(key), prefix)
	if !ok {
		return "", false
	}
	escaped, _, _ := strings.Cut(rest, ":")
	identity, err := url.QueryUnescape(escaped)
	if err != nil {
		return "", false
	}
	return identity, true
}

// scanIdentities adds every identity with a key under prefix to seen.
func (s *Store) scanIdentities(ctx context.Context, prefix string, seen map[string]struct{}) error {
	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if identity, ok := identityFromKey(prefix, it.Item().Key()); ok {
				seen[identity] = struct{}{}
			}
		}
		return nil
	})
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
