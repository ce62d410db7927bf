// Package service orchestrates metadata fetching across providers and
// applies the results to catalog titles.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metrics"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/store"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/textnorm"
)

const (
	// searchLimit bounds per-provider search fan-out during resolution.
	searchLimit = 5
	// maxSearchOptions caps the candidate list shown to a human picker.
	maxSearchOptions = 20
	// minValidDescriptionLength is the shortest stored description worth
	// keeping; anything shorter is treated as a placeholder.
	minValidDescriptionLength = 20
)

// Cache is the slice of the metadata cache the service consumes. A nil
// cache disables caching.
type Cache interface {
	GetGame(provider, externalID string) (*metadata.GameMetadata, error)
	SetGame(provider string, md *metadata.GameMetadata) error
	GetSearch(provider, query string) ([]metadata.SearchResult, error)
	SetSearch(provider, query string, results []metadata.SearchResult) error
}

// FetchResult is the outcome of one metadata resolution run.
type FetchResult struct {
	Found bool
	// Message is the human-readable provenance line: which provider
	// supplied the record and, when an enrichment pass ran, which
	// provider supplied the player counts. Never a raw network error.
	Message    string
	Provider   string
	EnrichedBy string
	Metadata   *metadata.GameMetadata
}

// MetadataService resolves external metadata for catalog titles.
type MetadataService struct {
	registry *metadata.Registry
	titles   store.TitleStore
	cache    Cache
	logger   *slog.Logger
}

func NewMetadataService(registry *metadata.Registry, titles store.TitleStore, cache Cache, logger *slog.Logger) *MetadataService {
	return &MetadataService{
		registry: registry,
		titles:   titles,
		cache:    cache,
		logger:   logger,
	}
}

// FetchMetadata resolves metadata for a title by walking the registered
// providers for the title's type in fallback order: search, take the top
// hit, fetch the full record, stop at the first provider that returns
// one. Provider failures are logged and skipped, never fatal. If the
// resolved record claims multiplayer without specific counts, a
// secondary enrichment pass fills them in.
func (s *MetadataService) FetchMetadata(ctx context.Context, title *domain.GameTitle, searchQuery string) (*FetchResult, error) {
	if title == nil {
		return nil, apperrors.Validation("title is required")
	}
	query := strings.TrimSpace(searchQuery)
	if query == "" {
		query = title.Name
	}

	providers := s.registry.ForTitleType(title.Type)
	if len(providers) == 0 {
		return notFoundResult(), nil
	}

	for _, p := range providers {
		id := p.Manifest().ID

		md, err := s.resolveFromProvider(ctx, p, query)
		if err != nil {
			s.logger.Warn("provider failed, trying next",
				"provider", id, "query", query, "error", err)
			continue
		}
		if md == nil {
			continue
		}

		result := &FetchResult{
			Found:    true,
			Provider: id,
			Metadata: md,
		}
		s.enrichPlayerCounts(ctx, title.Type, query, result)
		result.Message = provenanceMessage(result)
		return result, nil
	}

	return notFoundResult(), nil
}

// FetchMetadataFromProvider bypasses search and fetches one provider's
// record directly by external id, then runs the same enrichment pass.
func (s *MetadataService) FetchMetadataFromProvider(ctx context.Context, providerID, externalID string, titleType domain.TitleType) (*FetchResult, error) {
	p := s.registry.Get(providerID)
	if p == nil {
		return nil, apperrors.NotFoundf("unknown provider %q", providerID)
	}

	md, err := s.getGame(ctx, p, externalID)
	if err != nil {
		s.logger.Warn("direct provider fetch failed",
			"provider", providerID, "externalID", externalID, "error", err)
		return notFoundResult(), nil
	}
	if md == nil {
		return notFoundResult(), nil
	}

	result := &FetchResult{
		Found:    true,
		Provider: providerID,
		Metadata: md,
	}
	s.enrichPlayerCounts(ctx, titleType, md.Name, result)
	result.Message = provenanceMessage(result)
	return result, nil
}

// SearchMetadataOptions fans the query out across every provider valid
// for the title's type and returns a deduplicated, ranked candidate list
// for a human to pick from.
func (s *MetadataService) SearchMetadataOptions(ctx context.Context, title *domain.GameTitle, searchQuery string) ([]metadata.SearchResult, error) {
	if title == nil {
		return nil, apperrors.Validation("title is required")
	}
	query := strings.TrimSpace(searchQuery)
	if query == "" {
		query = title.Name
	}

	var all []metadata.SearchResult
	for _, p := range s.registry.ForTitleType(title.Type) {
		results, err := s.search(ctx, p, query)
		if err != nil {
			s.logger.Warn("provider search failed during fan-out",
				"provider", p.Manifest().ID, "query", query, "error", err)
			continue
		}
		all = append(all, results...)
	}

	all = metadata.DedupeSearchResults(all)
	metadata.SortSearchResults(query, all)
	if len(all) > maxSearchOptions {
		all = all[:maxSearchOptions]
	}
	return all, nil
}

// resolveFromProvider runs one provider's search-then-fetch step.
func (s *MetadataService) resolveFromProvider(ctx context.Context, p metadata.Provider, query string) (*metadata.GameMetadata, error) {
	results, err := s.search(ctx, p, query)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return s.getGame(ctx, p, results[0].ExternalID)
}

// enrichPlayerCounts runs the secondary pass: when the resolved record
// claims multiplayer support but carries no specific count, providers
// flagged with accurate player counts are tried in registration order
// until one supplies a count record.
func (s *MetadataService) enrichPlayerCounts(ctx context.Context, titleType domain.TitleType, query string, result *FetchResult) {
	players := result.Metadata.Players
	if players == nil || !players.ClaimsMultiplayer() || players.HasSpecificCounts() {
		return
	}

	for _, p := range s.registry.WithCapabilityForType(metadata.CapAccuratePlayerCounts, titleType) {
		id := p.Manifest().ID
		if id == result.Provider {
			continue
		}

		md, err := s.resolveFromProvider(ctx, p, query)
		if err != nil {
			s.logger.Warn("enrichment provider failed, trying next",
				"provider", id, "query", query, "error", err)
			continue
		}
		if md == nil || md.Players == nil || !md.Players.HasSpecificCounts() {
			continue
		}

		result.Metadata.Players = MergePlayerCounts(players, md.Players)
		result.EnrichedBy = id
		metrics.Enrichments.Inc()
		return
	}
}

// MergePlayerCounts merges an enrichment player record into an existing
// one. Per field, the enrichment value wins whenever present; otherwise
// the existing value is kept. Enrichment is invoked specifically to
// supply a better number, so this is the one place later data may
// overwrite earlier data.
func MergePlayerCounts(existing, enrichment *metadata.PlayerInfo) *metadata.PlayerInfo {
	if existing == nil {
		return enrichment
	}
	if enrichment == nil {
		return existing
	}

	merged := *existing

	pickInt := func(old, new *int) *int {
		if new != nil {
			return new
		}
		return old
	}
	pickBool := func(old, new *bool) *bool {
		if new != nil {
			return new
		}
		return old
	}

	merged.MinPlayers = pickInt(merged.MinPlayers, enrichment.MinPlayers)
	merged.MaxPlayers = pickInt(merged.MaxPlayers, enrichment.MaxPlayers)

	merged.SupportsOnline = pickBool(merged.SupportsOnline, enrichment.SupportsOnline)
	merged.MinPlayersOnline = pickInt(merged.MinPlayersOnline, enrichment.MinPlayersOnline)
	merged.MaxPlayersOnline = pickInt(merged.MaxPlayersOnline, enrichment.MaxPlayersOnline)

	merged.SupportsLocal = pickBool(merged.SupportsLocal, enrichment.SupportsLocal)
	merged.MinPlayersLocal = pickInt(merged.MinPlayersLocal, enrichment.MinPlayersLocal)
	merged.MaxPlayersLocal = pickInt(merged.MaxPlayersLocal, enrichment.MaxPlayersLocal)

	merged.SupportsPhysical = pickBool(merged.SupportsPhysical, enrichment.SupportsPhysical)
	merged.MinPlayersPhysical = pickInt(merged.MinPlayersPhysical, enrichment.MinPlayersPhysical)
	merged.MaxPlayersPhysical = pickInt(merged.MaxPlayersPhysical, enrichment.MaxPlayersPhysical)

	return &merged
}

// ApplyMetadataToTitle computes a field-level patch from resolved
// metadata and applies it to the stored title. The patch only ever adds
// or corrects: the description is replaced only when the stored one is a
// placeholder, the cover only when missing, and a mode's player counts
// are written only while that mode's support flag is (or is becoming)
// true. Turning a mode off clears its counts.
func (s *MetadataService) ApplyMetadataToTitle(ctx context.Context, titleID string, current *domain.GameTitle, md *metadata.GameMetadata) error {
	if current == nil || md == nil {
		return apperrors.Validation("title and metadata are required")
	}

	patch := BuildTitlePatch(current, md)
	if patch.IsEmpty() {
		return nil
	}
	return s.titles.UpdateTitle(ctx, titleID, patch)
}

// BuildTitlePatch computes the partial update ApplyMetadataToTitle
// applies. Exposed for the sync driver's dry-run mode.
func BuildTitlePatch(current *domain.GameTitle, md *metadata.GameMetadata) *domain.TitlePatch {
	patch := &domain.TitlePatch{}

	if desc := strings.TrimSpace(md.Description); desc != "" && isPlaceholderDescription(current) {
		patch.Description = &desc
	}

	if md.CoverURL != "" && current.CoverURL == "" {
		cover := md.CoverURL
		patch.CoverURL = &cover
	}

	if players := md.Players; players != nil {
		applyMode(players.SupportsOnline, current.SupportsOnline,
			players.MinPlayersOnline, players.MaxPlayersOnline,
			&patch.SupportsOnline, &patch.MinPlayersOnline, &patch.MaxPlayersOnline)
		applyMode(players.SupportsLocal, current.SupportsLocal,
			players.MinPlayersLocal, players.MaxPlayersLocal,
			&patch.SupportsLocal, &patch.MinPlayersLocal, &patch.MaxPlayersLocal)
		applyMode(players.SupportsPhysical, current.SupportsPhysical,
			players.MinPlayersPhysical, players.MaxPlayersPhysical,
			&patch.SupportsPhysical, &patch.MinPlayersPhysical, &patch.MaxPlayersPhysical)

		if players.MinPlayers != nil {
			patch.MinPlayers = players.MinPlayers
		}
		if players.MaxPlayers != nil {
			patch.MaxPlayers = players.MaxPlayers
		}
	}

	return patch
}

// applyMode writes one play mode's slice of the patch. The support flag
// is set directly when known; the paired counts are written only if the
// flag is, or is becoming, true. A flag turning false clears the counts
// so a title never stores a player count for a mode it does not support.
func applyMode(supports *bool, currentlySupports bool, minCount, maxCount *int,
	supportsDst **bool, minDst, maxDst **int) {

	if supports != nil {
		*supportsDst = supports
	}

	effective := currentlySupports
	if supports != nil {
		effective = *supports
	}

	if !effective {
		if supports != nil && !*supports {
			zero := 0
			*minDst = &zero
			maxZero := 0
			*maxDst = &maxZero
		}
		return
	}

	if minCount != nil {
		*minDst = minCount
	}
	if maxCount != nil {
		*maxDst = maxCount
	}
}

// isPlaceholderDescription reports whether the stored description is
// worth replacing: missing, too short to be real, or just the title's
// own name typed again.
func isPlaceholderDescription(t *domain.GameTitle) bool {
	desc := strings.TrimSpace(t.Description)
	if desc == "" {
		return true
	}
	if len(desc) < minValidDescriptionLength {
		return true
	}
	return textnorm.Normalize(desc) == textnorm.Normalize(t.Name)
}

// search wraps a provider's search with the cache and metrics.
func (s *MetadataService) search(ctx context.Context, p metadata.Provider, query string) ([]metadata.SearchResult, error) {
	id := p.Manifest().ID

	if s.cache != nil {
		if cached, err := s.cache.GetSearch(id, query); err == nil && cached != nil {
			metrics.CacheHits.WithLabelValues(id, "search").Inc()
			return cached, nil
		}
	}

	metrics.ProviderRequests.WithLabelValues(id, "search").Inc()
	results, err := p.Search(ctx, query, searchLimit)
	if err != nil {
		metrics.ProviderFailures.WithLabelValues(id, failureClass(err)).Inc()
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetSearch(id, query, results); err != nil {
			s.logger.Warn("failed to cache search results", "provider", id, "error", err)
		}
	}
	return results, nil
}

// getGame wraps a provider's single fetch with retry, the cache, and
// metrics.
func (s *MetadataService) getGame(ctx context.Context, p metadata.Provider, externalID string) (*metadata.GameMetadata, error) {
	id := p.Manifest().ID

	if s.cache != nil {
		if cached, err := s.cache.GetGame(id, externalID); err == nil && cached != nil {
			metrics.CacheHits.WithLabelValues(id, "game").Inc()
			return cached, nil
		}
	}

	metrics.ProviderRequests.WithLabelValues(id, "getGame").Inc()
	md, err := metadata.FetchWithRetry(ctx, p, externalID)
	if err != nil {
		metrics.ProviderFailures.WithLabelValues(id, failureClass(err)).Inc()
		return nil, err
	}

	if md != nil && s.cache != nil {
		if err := s.cache.SetGame(id, md); err != nil {
			s.logger.Warn("failed to cache game metadata", "provider", id, "error", err)
		}
	}
	return md, nil
}

func failureClass(err error) string {
	if metadata.IsTransient(err) {
		return "transient"
	}
	return "permanent"
}

func notFoundResult() *FetchResult {
	return &FetchResult{Found: false, Message: "no metadata found"}
}

func provenanceMessage(r *FetchResult) string {
	if r.EnrichedBy != "" {
		return fmt.Sprintf("found via %s, enriched via %s", r.Provider, r.EnrichedBy)
	}
	return fmt.Sprintf("found via %s", r.Provider)
}
