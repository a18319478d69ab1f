package providers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/studytrack/studytrack-server/internal/config"
	"github.com/studytrack/studytrack-server/internal/logger"
	"github.com/studytrack/studytrack-server/internal/sse"
	"github.com/studytrack/studytrack-server/internal/store"
	"github.com/studytrack/studytrack-server/internal/store/badgerdb"
	"github.com/studytrack/studytrack-server/internal/store/sqlite"
)

// SSEManagerHandle wraps the SSE manager with its context for lifecycle management.
type SSEManagerHandle struct {
	*sse.Manager
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *SSEManagerHandle) Shutdown() error {
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Manager.Shutdown(ctx)
}

// ProvideSSEManager provides the server-sent events manager.
func ProvideSSEManager(i do.Injector) (*SSEManagerHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	manager := sse.NewManager(log.Logger)

	// Start in background
	ctx, cancel := context.WithCancel(context.Background())
	go manager.Start(ctx)

	log.Info("SSE manager started")

	return &SSEManagerHandle{
		Manager: manager,
		cancel:  cancel,
	}, nil
}

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the configured store backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		st   store.Store
		path string
		err  error
	)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		st, err = badgerdb.NewInMemory(log.Logger)
		log.Warn("Using in-memory store; data is lost on shutdown")
	case config.BackendSQLite:
		if err = os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data path: %w", err)
		}
		path = filepath.Join(cfg.Storage.DataPath, "studytrack.db")
		st, err = sqlite.Open(path, log.Logger)
	default:
		path = filepath.Join(cfg.Storage.DataPath, "db")
		st, err = badgerdb.New(path, log.Logger)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}

	log.Info("Database initialized", "backend", cfg.Storage.Backend, "path", path)

	return &StoreHandle{Store: st}, nil
}
