package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// escapedRoutePath makes chi match routes against the escaped request path,
// so path parameters arrive still escaped and pathKey decodes them exactly
// once. Without it chi matches the decoded path, unless the request happens
// to contain an escape like %2F.
func escapedRoutePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath == "" {
			rctx.RoutePath = r.URL.EscapedPath()
		}
		next.ServeHTTP(w, r)
	})
}

// pathKey decodes a natural key taken from an escaped path segment.
func pathKey(raw string) string {
	if key, err := url.PathUnescape(raw); err == nil {
		return key
	}
	return raw
}

// DeleteResponse confirms a deletion.
type DeleteResponse struct {
	Deleted bool `json:"deleted" doc:"Always true on success"`
	Count   int  `json:"count" doc:"Number of records removed"`
}

// DeleteOutput wraps DeleteResponse for Huma.
type DeleteOutput struct {
	Body DeleteResponse
}

func deleted(n int) *DeleteOutput {
	return &DeleteOutput{Body: DeleteResponse{Deleted: true, Count: n}}
}
