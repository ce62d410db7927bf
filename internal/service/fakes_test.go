package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/JulianiusM/InventoryManagement-sub002/internal/domain"
	apperrors "github.com/JulianiusM/InventoryManagement-sub002/internal/errors"
	"github.com/JulianiusM/InventoryManagement-sub002/internal/metadata"
)

// fakeProvider is a scriptable Provider for orchestration tests.
type fakeProvider struct {
	id         string
	titleTypes []domain.TitleType
	caps       metadata.Capabilities

	searchResults []metadata.SearchResult
	searchErr     error
	games         map[string]*metadata.GameMetadata
	getGameErr    error

	searchCalls  int
	getGameCalls int
}

func (f *fakeProvider) Manifest() metadata.Manifest {
	return metadata.Manifest{
		ID:          f.id,
		DisplayName: f.id,
		TitleTypes:  f.titleTypes,
	}
}

func (f *fakeProvider) Capabilities() metadata.Capabilities { return f.caps }

func (f *fakeProvider) RateLimit() metadata.RateLimitConfig {
	return metadata.RateLimitConfig{MaxRetries: 0}
}

func (f *fakeProvider) Search(ctx context.Context, query string, limit int) ([]metadata.SearchResult, error) {
	f.searchCalls++
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults, nil
}

func (f *fakeProvider) GetGame(ctx context.Context, externalID string) (*metadata.GameMetadata, error) {
	f.getGameCalls++
	if f.getGameErr != nil {
		return nil, f.getGameErr
	}
	return f.games[externalID], nil
}

func (f *fakeProvider) GetGames(ctx context.Context, externalIDs []string) ([]*metadata.GameMetadata, error) {
	var out []*metadata.GameMetadata
	for _, id := range externalIDs {
		md, err := f.GetGame(ctx, id)
		if err != nil {
			return out, err
		}
		if md != nil {
			out = append(out, md)
		}
	}
	return out, nil
}

func (f *fakeProvider) GameURL(externalID string) string {
	return "https://example.com/" + externalID
}

// hit wires a one-result search pointing at a stored game record.
func (f *fakeProvider) hit(externalID string, md *metadata.GameMetadata) *fakeProvider {
	f.searchResults = []metadata.SearchResult{
		{Provider: f.id, ExternalID: externalID, Name: md.Name},
	}
	if f.games == nil {
		f.games = map[string]*metadata.GameMetadata{}
	}
	f.games[externalID] = md
	return f
}

func newFakeProvider(id string, types ...domain.TitleType) *fakeProvider {
	if len(types) == 0 {
		types = []domain.TitleType{domain.TitleTypeVideoGame}
	}
	return &fakeProvider{id: id, titleTypes: types, caps: metadata.Capabilities{Search: true}}
}

// fakeTitleStore records patches applied per title id.
type fakeTitleStore struct {
	titles  map[string]*domain.GameTitle
	patches map[string][]*domain.TitlePatch
	listErr error
}

func newFakeTitleStore(titles ...*domain.GameTitle) *fakeTitleStore {
	s := &fakeTitleStore{
		titles:  map[string]*domain.GameTitle{},
		patches: map[string][]*domain.TitlePatch{},
	}
	for _, t := range titles {
		s.titles[t.ID] = t
	}
	return s
}

func (s *fakeTitleStore) GetTitle(ctx context.Context, id string) (*domain.GameTitle, error) {
	t, ok := s.titles[id]
	if !ok {
		return nil, apperrors.NotFoundf("title %s not found", id)
	}
	return t, nil
}

func (s *fakeTitleStore) ListTitles(ctx context.Context, ownerID string) ([]domain.GameTitle, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []domain.GameTitle
	for _, t := range s.titles {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *fakeTitleStore) UpdateTitle(ctx context.Context, id string, patch *domain.TitlePatch) error {
	if _, ok := s.titles[id]; !ok {
		return apperrors.NotFoundf("title %s not found", id)
	}
	s.patches[id] = append(s.patches[id], patch)
	return nil
}

// fakeCache is an in-memory Cache.
type fakeCache struct {
	games    map[string]*metadata.GameMetadata
	searches map[string][]metadata.SearchResult
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		games:    map[string]*metadata.GameMetadata{},
		searches: map[string][]metadata.SearchResult{},
	}
}

func (c *fakeCache) GetGame(provider, externalID string) (*metadata.GameMetadata, error) {
	return c.games[provider+":"+externalID], nil
}

func (c *fakeCache) SetGame(provider string, md *metadata.GameMetadata) error {
	c.games[provider+":"+md.ExternalID] = md
	return nil
}

func (c *fakeCache) GetSearch(provider, query string) ([]metadata.SearchResult, error) {
	return c.searches[provider+":"+query], nil
}

func (c *fakeCache) SetSearch(provider, query string, results []metadata.SearchResult) error {
	if results == nil {
		results = []metadata.SearchResult{}
	}
	c.searches[provider+":"+query] = results
	return nil
}

// fakePlatformStore is an in-memory PlatformStore.
type fakePlatformStore struct {
	platforms  map[string]*domain.Platform
	mergeCalls []string
	mergeErr   error
}

func newFakePlatformStore() *fakePlatformStore {
	return &fakePlatformStore{platforms: map[string]*domain.Platform{}}
}

func (s *fakePlatformStore) CreatePlatform(ctx context.Context, p *domain.Platform) error {
	for _, existing := range s.platforms {
		if existing.OwnerID == p.OwnerID && strings.EqualFold(existing.Name, p.Name) {
			return apperrors.AlreadyExistsf("platform %q already exists", p.Name)
		}
	}
	cp := *p
	s.platforms[p.ID] = &cp
	return nil
}

func (s *fakePlatformStore) GetPlatform(ctx context.Context, id string) (*domain.Platform, error) {
	p, ok := s.platforms[id]
	if !ok {
		return nil, apperrors.NotFoundf("platform %s not found", id)
	}
	return p, nil
}

func (s *fakePlatformStore) ListPlatforms(ctx context.Context, ownerID string) ([]domain.Platform, error) {
	var out []domain.Platform
	for _, p := range s.platforms {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *fakePlatformStore) UpdatePlatform(ctx context.Context, p *domain.Platform) error {
	if _, ok := s.platforms[p.ID]; !ok {
		return apperrors.NotFoundf("platform %s not found", p.ID)
	}
	cp := *p
	s.platforms[p.ID] = &cp
	return nil
}

func (s *fakePlatformStore) DeletePlatform(ctx context.Context, id string) error {
	if _, ok := s.platforms[id]; !ok {
		return apperrors.NotFoundf("platform %s not found", id)
	}
	delete(s.platforms, id)
	return nil
}

func (s *fakePlatformStore) MergePlatforms(ctx context.Context, ownerID, sourceID, targetID string) error {
	s.mergeCalls = append(s.mergeCalls, fmt.Sprintf("%s:%s->%s", ownerID, sourceID, targetID))
	return s.mergeErr
}
