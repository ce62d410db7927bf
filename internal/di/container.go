// Package di provides dependency injection configuration for the catalog
// metadata engine.
package di

import (
	"github.com/samber/do/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/config"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/di/providers"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/logger"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideMetadataCache)

	// Provider registry
	do.Provide(injector, providers.ProvideRegistry)

	// Business services
	do.Provide(injector, providers.ProvideMetadataService)
	do.Provide(injector, providers.ProvidePlatformService)
	do.Provide(injector, providers.ProvideSyncService)

	// Workers
	do.Provide(injector, providers.ProvideSyncJob)

	return injector
}

// Bootstrap eagerly constructs every service so configuration and
// storage failures surface at startup instead of on first use.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.CacheHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*metadata.Registry](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.MetadataService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.PlatformService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*service.SyncService](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SyncJob](injector); err != nil {
		return err
	}
	return nil
}
