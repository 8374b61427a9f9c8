package gazetteer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-activity-locations/internal/models"
	"github.com/FACorreiaa/go-activity-locations/internal/types"
)

var _ Client = (*CachedClient)(nil)

// CachedClient memoizes admin options and place detail. The gazetteer
// hierarchy changes rarely; search results are never cached.
type CachedClient struct {
	next   Client
	cache  *cache.Cache
	logger *slog.Logger
}

func NewCachedClient(next Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	return &CachedClient{
		next:   next,
		cache:  cache.New(ttl, 2*ttl),
		logger: logger,
	}
}

func (c *CachedClient) ListAdminOptions(ctx context.Context, level types.AdminLevel, parentKey string) ([]types.AdminOption, error) {
	key := fmt.Sprintf("admin:%d:%s", int(level), parentKey)
	if v, ok := c.cache.Get(key); ok {
		c.logger.DebugContext(ctx, "Admin options served from cache", slog.String("key", key))
		return append([]types.AdminOption(nil), v.([]types.AdminOption)...), nil
	}
	opts, err := c.next.ListAdminOptions(ctx, level, parentKey)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, opts, cache.DefaultExpiration)
	return append([]types.AdminOption(nil), opts...), nil
}

func (c *CachedClient) SearchPlaces(ctx context.Context, term string, page int) (types.SearchPage, error) {
	return c.next.SearchPlaces(ctx, term, page)
}

func (c *CachedClient) GetPlaceDetail(ctx context.Context, gazetteerID string) (models.LocationSnapshot, error) {
	key := "detail:" + gazetteerID
	if v, ok := c.cache.Get(key); ok {
		return v.(models.LocationSnapshot), nil
	}
	snap, err := c.next.GetPlaceDetail(ctx, gazetteerID)
	if err != nil {
		return models.LocationSnapshot{}, err
	}
	c.cache.Set(key, snap, cache.DefaultExpiration)
	return snap, nil
}
