package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/config"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/logger"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/service"
)

// SyncJob runs periodic bulk metadata syncs across every owner.
type SyncJob struct {
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (j *SyncJob) Shutdown() error {
	j.cancel()
	return nil
}

// ProvideSyncJob provides the periodic bulk metadata sync job. One pass
// runs at startup; further passes repeat at the configured interval. A
// zero interval leaves it at the single startup pass.
func ProvideSyncJob(i do.Injector) (*SyncJob, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	syncService := do.MustInvoke[*service.SyncService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())

	runAll := func() {
		owners, err := storeHandle.ListOwners(ctx)
		if err != nil {
			log.Warn("Sync run failed to list owners", "error", err)
			return
		}
		for _, owner := range owners {
			report, err := syncService.SyncOwner(ctx, owner)
			if err != nil {
				log.Warn("Sync run aborted", "owner", owner, "error", err)
				return
			}
			log.Info("Sync run completed",
				"owner", owner,
				"scanned", report.Scanned,
				"updated", report.Updated,
				"skipped", report.Skipped,
				"not_found", report.NotFound,
				"failed", report.Failed,
			)
		}
	}

	go func() {
		runAll()

		if cfg.Sync.Interval <= 0 {
			return
		}
		ticker := time.NewTicker(cfg.Sync.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				runAll()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info("Metadata sync job started", "interval", cfg.Sync.Interval)
	return &SyncJob{cancel: cancel}, nil
}
