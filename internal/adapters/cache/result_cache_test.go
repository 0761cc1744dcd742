package cache

import (
	"context"
	"testing"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/safety"
	"github.com/SafeHaul-Logistics/service-routing/internal/platform/apperr"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewResultCacheWithClient(client, ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func testRecord(routeID string) safety.EvaluationRecord {
	return safety.EvaluationRecord{
		Evaluated: &safety.EvaluatedRoute{
			Route: &route.Route{
				ID:              routeID,
				DistanceMeters:  10000,
				DurationSeconds: 900,
			},
			Composite: 2.5,
			Display:   25,
			IsSafest:  true,
		},
		VehicleClass: safety.VehicleMedium,
		CargoClass:   "3",
	}
}

func TestResultCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	rec := testRecord("route-abc")
	require.NoError(t, c.Put(ctx, rec))

	got, err := c.Get(ctx, "route-abc")
	require.NoError(t, err)
	assert.Equal(t, "route-abc", got.Evaluated.Route.ID)
	assert.Equal(t, 2.5, got.Evaluated.Composite)
	assert.True(t, got.Evaluated.IsSafest)
	assert.Equal(t, safety.VehicleMedium, got.VehicleClass)
	assert.Equal(t, "3", got.CargoClass)
}

func TestResultCacheMissIsNotFound(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	_, err := c.Get(context.Background(), "route-missing")
	require.Error(t, err)

	var aerr *apperr.Error
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, apperr.KindNotFound, aerr.Kind())
}

func TestResultCacheEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, testRecord("route-ttl")))

	mr.FastForward(2 * time.Minute)

	_, err := c.Get(ctx, "route-ttl")
	require.Error(t, err)

	var aerr *apperr.Error
	assert.ErrorAs(t, err, &aerr)
}

func TestResultCacheRejectsEmptyRecord(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	assert.Error(t, c.Put(context.Background(), safety.EvaluationRecord{}))
}
