package providers

import (
	"github.com/samber/do/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/config"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/logger"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/store"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/store/sqlite"
)

// StoreHandle wraps the catalog store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the sqlite catalog store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := sqlite.Open(cfg.Storage.DatabasePath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Storage.DatabasePath)
	return &StoreHandle{Store: db}, nil
}

// CacheHandle wraps the metadata cache with shutdown capability. Cache
// holds nil when caching is disabled.
type CacheHandle struct {
	Cache *store.MetadataCache
}

// Shutdown implements do.Shutdownable.
func (h *CacheHandle) Shutdown() error {
	if h.Cache == nil {
		return nil
	}
	return h.Cache.Close()
}

// ProvideMetadataCache provides the on-disk metadata cache.
func ProvideMetadataCache(i do.Injector) (*CacheHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Storage.CacheEnabled {
		log.Info("Metadata cache disabled")
		return &CacheHandle{}, nil
	}

	cache, err := store.OpenCache(cfg.Storage.CachePath, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Metadata cache initialized", "path", cfg.Storage.CachePath)
	return &CacheHandle{Cache: cache}, nil
}
