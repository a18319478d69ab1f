// Package service implements StudyTrack's operations over the per-identity
// store. Each service authorizes the caller through the Gate, normalizes and
// validates input, runs mutations under the caller's partition lock, and then
// publishes the change to the search index and the SSE feed.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/store"
)

// Indexer keeps the search index in step with store writes.
type Indexer interface {
	IndexDocument(doc *search.SearchDocument) error
	DeleteDocument(id string) error
}

// storeError translates store sentinels into domain errors for op and key.
// Anything else is wrapped unchanged.
func storeError(err error, op, key string) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return domainerrors.NotFound(op, key).WithCause(err)
	case errors.Is(err, store.ErrAlreadyExists):
		return domainerrors.DuplicateKey(op, key).WithCause(err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// reindex updates the search index after a write. The index is derived data
// and rebuilt at startup, so a failure is logged rather than returned.
func reindex(logger *slog.Logger, indexer Indexer, doc *search.SearchDocument) {
	if indexer == nil {
		return
	}
	if err := indexer.IndexDocument(doc); err != nil {
		logger.Warn("failed to update search index", "doc_id", doc.ID, "error", err)
	}
}

func unindex(logger *slog.Logger, indexer Indexer, docID string) {
	if indexer == nil {
		return
	}
	if err := indexer.DeleteDocument(docID); err != nil {
		logger.Warn("failed to remove from search index", "doc_id", docID, "error", err)
	}
}
