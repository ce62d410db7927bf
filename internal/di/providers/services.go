package providers

import (
	"github.com/samber/do/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/logger"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/service"
)

// ProvideMetadataService provides the metadata orchestration service.
func ProvideMetadataService(i do.Injector) (*service.MetadataService, error) {
	registry := do.MustInvoke[*metadata.Registry](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	// A typed-nil *MetadataCache inside the Cache interface would dodge
	// the service's nil checks, so only pass it when one exists.
	var cache service.Cache
	if cacheHandle.Cache != nil {
		cache = cacheHandle.Cache
	}

	return service.NewMetadataService(registry, storeHandle.Store, cache, log.Logger), nil
}

// ProvidePlatformService provides the platform management service.
func ProvidePlatformService(i do.Injector) (*service.PlatformService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPlatformService(storeHandle.Store, log.Logger), nil
}

// ProvideSyncService provides the bulk metadata sync driver.
func ProvideSyncService(i do.Injector) (*service.SyncService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	mdService := do.MustInvoke[*service.MetadataService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSyncService(storeHandle.Store, mdService, log.Logger), nil
}
