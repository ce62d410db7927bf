package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/store"
)

// SyncReport summarizes one bulk metadata run.
type SyncReport struct {
	Scanned  int
	Updated  int
	Skipped  int
	NotFound int
	Failed   int
}

// SyncService drives bulk metadata runs over a user's catalog. It walks
// every title, resolves metadata for the ones with gaps, and applies the
// result through the same patch path the single-title flow uses.
type SyncService struct {
	titles   store.TitleStore
	metadata *MetadataService
	logger   *slog.Logger
}

func NewSyncService(titles store.TitleStore, metadata *MetadataService, logger *slog.Logger) *SyncService {
	return &SyncService{
		titles:   titles,
		metadata: metadata,
		logger:   logger,
	}
}

// SyncOwner runs a bulk metadata pass over every title owned by ownerID.
// Titles that already have a description, a cover, and player counts are
// skipped. Per-title failures are counted and logged, never fatal; only
// a cancelled context aborts the run.
func (s *SyncService) SyncOwner(ctx context.Context, ownerID string) (*SyncReport, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, apperrors.Validation("owner id is required")
	}

	titles, err := s.titles.ListTitles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{}
	for i := range titles {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		title := &titles[i]
		report.Scanned++

		if !needsMetadata(title) {
			report.Skipped++
			continue
		}

		result, err := s.metadata.FetchMetadata(ctx, title, "")
		if err != nil {
			report.Failed++
			s.logger.Warn("sync: metadata fetch failed",
				"titleID", title.ID, "name", title.Name, "error", err)
			continue
		}
		if !result.Found {
			report.NotFound++
			s.logger.Info("sync: no metadata found",
				"titleID", title.ID, "name", title.Name)
			continue
		}

		if err := s.metadata.ApplyMetadataToTitle(ctx, title.ID, title, result.Metadata); err != nil {
			report.Failed++
			s.logger.Warn("sync: failed to apply metadata",
				"titleID", title.ID, "name", title.Name, "error", err)
			continue
		}

		report.Updated++
		s.logger.Info("sync: title updated",
			"titleID", title.ID, "name", title.Name, "source", result.Message)
	}

	return report, nil
}

// needsMetadata reports whether a title has gaps worth a provider run.
func needsMetadata(t *domain.GameTitle) bool {
	if isPlaceholderDescription(t) {
		return true
	}
	if t.CoverURL == "" {
		return true
	}
	if t.MaxPlayers == 0 {
		return true
	}
	return false
}
