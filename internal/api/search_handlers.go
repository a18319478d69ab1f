package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/service"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search goals and resources",
		Description: "Full-text search over the caller's own goals and resources",
		Tags:        []string{"Search"},
		Security:    bearerAuth,
	}, s.handleSearch)
}

// SearchInput contains search query parameters.
type SearchInput struct {
	Query    string   `query:"q" doc:"Search text. Empty lists everything."`
	Types    []string `query:"type" doc:"Restrict to goal or resource"`
	Category string   `query:"category" doc:"Restrict to one category"`
	Sort     string   `query:"sort" enum:"relevance,title,recent" default:"relevance" doc:"Result order"`
	Limit    int      `query:"limit" minimum:"0" maximum:"100" default:"20" doc:"Maximum hits"`
	Offset   int      `query:"offset" minimum:"0" default:"0" doc:"Hits to skip"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body *search.SearchResult
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	identity, err := GetIdentity(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.services.Search.Search(ctx, identity, service.SearchQuery{
		Query:    input.Query,
		Types:    input.Types,
		Category: input.Category,
		SortBy:   input.Sort,
		Limit:    input.Limit,
		Offset:   input.Offset,
	})
	if err != nil {
		return nil, toAPIError(s.logger, err)
	}

	return &SearchOutput{Body: result}, nil
}
