package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	domainerrors "github.com/studytrack/studytrack-server/internal/errors"
	"github.com/studytrack/studytrack-server/internal/normalize"
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/store"
)

// SearchQuery is a caller's search request.
type SearchQuery struct {
	Query    string
	Types    []string
	Category string
	SortBy   string
	Limit    int
	Offset   int
}

// SearchService searches the caller's goals and resources.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	gate   *Gate
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, st store.Store, gate *Gate, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  st,
		gate:   gate,
		logger: logger,
	}
}

// Search runs q against identity's own documents only.
func (s *SearchService) Search(ctx context.Context, identity string, q SearchQuery) (*search.SearchResult, error) {
	const op = "search"

	if _, err := s.gate.Authorize(ctx, identity, ActionRead, op); err != nil {
		return nil, err
	}

	params := search.DefaultSearchParams()
	params.Owner = identity
	params.Query = normalize.Text(q.Query)
	params.Offset = q.Offset
	if q.Limit > 0 {
		params.Limit = q.Limit
	}
	if q.SortBy != "" {
		params.SortBy = q.SortBy
	}
	if c := strings.TrimSpace(q.Category); c != "" {
		params.Category = normalize.Category(c)
	}
	for _, t := range q.Types {
		docType, ok := search.ParseDocType(t)
		if !ok {
			return nil, domainerrors.Validationf("invalid type %q (must be goal or resource)", t).WithOp(op)
		}
		params.Types = append(params.Types, docType)
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Reindex rebuilds the search index from every identity's goals and resources.
func (s *SearchService) Reindex(ctx context.Context) error {
	identities, err := s.store.ListIdentities(ctx)
	if err != nil {
		return fmt.Errorf("list identities: %w", err)
	}

	var docs []*search.SearchDocument
	for _, identity := range identities {
		goals, err := s.store.ListGoals(ctx, identity)
		if err != nil {
			return fmt.Errorf("list goals for %s: %w", identity, err)
		}
		for _, g := range goals {
			docs = append(docs, search.GoalToSearchDocument(identity, g))
		}

		resources, err := s.store.ListResources(ctx, identity)
		if err != nil {
			return fmt.Errorf("list resources for %s: %w", identity, err)
		}
		for _, r := range resources {
			docs = append(docs, search.ResourceToSearchDocument(identity, r))
		}
	}

	if err := s.index.Rebuild(docs); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	s.logger.Info("search index rebuilt",
		"identities", len(identities),
		"documents", len(docs),
	)
	return nil
}
