package providers

import (
	"github.com/samber/do/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/config"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/logger"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/bgg"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/boardgameatlas"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/gamesdb"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/igdb"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/rawg"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/steam"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata/wikidata"
)

// ProvideRegistry provides the provider registry with every adapter
// registered. Registration order defines fallback priority per title
// type, so the most reliable sources go first. Wikidata registers last;
// it serves both title types as the fallback of last resort.
func ProvideRegistry(i do.Injector) (*metadata.Registry, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	registry := metadata.NewRegistry()

	// Video game adapters.
	registry.Register(igdb.New(cfg.Providers.IGDBClientID, cfg.Providers.IGDBClientSecret, log.Logger))
	registry.Register(steam.New(log.Logger))
	registry.Register(rawg.New(cfg.Providers.RAWGAPIKey, log.Logger))
	registry.Register(gamesdb.New(cfg.Providers.GamesDBAPIKey, log.Logger))

	// Tabletop adapters.
	registry.Register(bgg.New(log.Logger))
	registry.Register(boardgameatlas.New(cfg.Providers.BGAClientID, log.Logger))

	// Serves both title types.
	registry.Register(wikidata.New(log.Logger))

	log.Info("Provider registry initialized", "providers", len(registry.All()))
	return registry, nil
}
