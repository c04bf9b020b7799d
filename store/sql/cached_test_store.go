package sqlstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	repositorycache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-testhooks/core"
)

const testCacheKeyPrefix = "go-testhooks::test::v1"

// CachedTestStore serves GetByID reads through a cache. Writes go straight to
// the base store; schedule and project listings always hit the database so the
// scheduler never runs against a stale roster.
type CachedTestStore struct {
	base  core.TestStore
	cache repositorycache.CacheService
}

func NewCachedTestStore(base core.TestStore, cacheService repositorycache.CacheService) (*CachedTestStore, error) {
	if base == nil {
		return nil, fmt.Errorf("sqlstore: base test store is required")
	}
	if cacheService == nil {
		return nil, fmt.Errorf("sqlstore: test cache service is required")
	}
	return &CachedTestStore{base: base, cache: cacheService}, nil
}

// TestCacheKey returns the deterministic cache key contract for test reads:
// go-testhooks::test::v1::<test_id> with the id URL-path escaped.
func TestCacheKey(testID string) (string, error) {
	trimmed := strings.TrimSpace(testID)
	if trimmed == "" {
		return "", fmt.Errorf("sqlstore: test id is required")
	}
	return testCacheKeyPrefix + "::" + url.PathEscape(trimmed), nil
}

func (s *CachedTestStore) Create(ctx context.Context, in core.CreateTestInput) (core.Test, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Test{}, fmt.Errorf("sqlstore: cached test store is not configured")
	}
	created, err := s.base.Create(ctx, in)
	if err != nil {
		return core.Test{}, err
	}
	cacheKey, err := TestCacheKey(created.ID)
	if err != nil {
		return core.Test{}, err
	}
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		return core.Test{}, err
	}
	return created, nil
}

func (s *CachedTestStore) GetByID(ctx context.Context, id string) (core.Test, error) {
	if s == nil || s.base == nil || s.cache == nil {
		return core.Test{}, fmt.Errorf("sqlstore: cached test store is not configured")
	}
	cacheKey, err := TestCacheKey(id)
	if err != nil {
		return core.Test{}, core.ErrTestNotFound
	}
	return repositorycache.GetOrFetch(ctx, s.cache, cacheKey, func(ctx context.Context) (core.Test, error) {
		return s.base.GetByID(ctx, id)
	})
}

func (s *CachedTestStore) ListScheduled(ctx context.Context) ([]core.Test, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached test store is not configured")
	}
	return s.base.ListScheduled(ctx)
}

func (s *CachedTestStore) ListByProject(ctx context.Context, projectID string) ([]core.Test, error) {
	if s == nil || s.base == nil {
		return nil, fmt.Errorf("sqlstore: cached test store is not configured")
	}
	return s.base.ListByProject(ctx, projectID)
}

var _ core.TestStore = (*CachedTestStore)(nil)
