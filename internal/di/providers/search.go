package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/search"
	"github.com/studytrack/studytrack-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewSearchIndex(search.Options{Logger: log.Logger})
	if err != nil {
		return nil, err
	}

	log.Info("Search index initialized")

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	roles := do.MustInvoke[*service.RoleService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.SearchIndex, storeHandle.Store, roles.Gate(), log.Logger), nil
}

// ReindexSearch loads every stored goal and resource into the index. The
// index lives in memory, so this runs on every start.
func ReindexSearch(i do.Injector) error {
	searchService := do.MustInvoke[*service.SearchService](i)
	return searchService.Reindex(context.Background())
}
