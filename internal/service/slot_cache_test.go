package service

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSlotCache(t *testing.T, ttl time.Duration) (*SlotCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSlotCache(client, log, ttl), mr
}

func TestSlotCache_SetGet(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx, 1, 2, monday)
	assert.False(t, ok)

	cache.Set(ctx, 1, 2, monday, 0, []string{"08:00", "09:00"})
	assert.True(t, mr.Exists("slots:1:2:2024-06-03"))
	assert.Equal(t, time.Minute, mr.TTL("slots:1:2:2024-06-03"))

	slots, ok := cache.Get(ctx, 1, 2, monday)
	require.True(t, ok)
	assert.Equal(t, []string{"08:00", "09:00"}, slots)
}

func TestSlotCache_EmptyListIsAHit(t *testing.T) {
	cache, _ := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, 1, 2, monday, 0, []string{})

	slots, ok := cache.Get(ctx, 1, 2, monday)
	require.True(t, ok)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestSlotCache_Expires(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, 1, 2, monday, 0, []string{"08:00"})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, 1, 2, monday)
	assert.False(t, ok)
}

func TestSlotCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	require.NoError(t, mr.Set("slots:1:2:2024-06-03", "not-json"))

	_, ok := cache.Get(context.Background(), 1, 2, monday)
	assert.False(t, ok)
}

func TestSlotCache_InvalidateDate(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, 1, 2, monday, 0, []string{"08:00"})
	cache.Set(ctx, 1, 2, monday.AddDate(0, 0, 7), 0, []string{"08:00"})

	cache.InvalidateDate(ctx, 1, 2, monday)

	assert.False(t, mr.Exists("slots:1:2:2024-06-03"))
	assert.True(t, mr.Exists("slots:1:2:2024-06-10"))
}

func TestSlotCache_InvalidateSpecialist(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		cache.Set(ctx, 1, 2, monday.AddDate(0, 0, i), 0, []string{"08:00"})
	}
	cache.Set(ctx, 1, 3, monday, 0, []string{"08:00"})
	cache.Set(ctx, 9, 2, monday, 0, []string{"08:00"})

	cache.InvalidateSpecialist(ctx, 1, 2)

	assert.ElementsMatch(t, []string{"slots:1:3:2024-06-03", "slots:9:2:2024-06-03", "slots:gen:1:2"}, mr.Keys())
}

func TestSlotCache_SetAfterInvalidateDateIsDropped(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	// A listing reads the generation, then a booking invalidates the day
	// before the listing stores its result.
	gen, ok := cache.Generation(ctx, 1, 2)
	require.True(t, ok)
	cache.InvalidateDate(ctx, 1, 2, monday)

	assert.False(t, cache.Set(ctx, 1, 2, monday, gen, []string{"08:00", "09:00"}))
	assert.False(t, mr.Exists("slots:1:2:2024-06-03"))

	next, ok := cache.Generation(ctx, 1, 2)
	require.True(t, ok)
	assert.Equal(t, gen+1, next)
	assert.True(t, cache.Set(ctx, 1, 2, monday, next, []string{"08:00"}))
	assert.True(t, mr.Exists("slots:1:2:2024-06-03"))
}

func TestSlotCache_SetAfterInvalidateSpecialistIsDropped(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	gen, ok := cache.Generation(ctx, 1, 2)
	require.True(t, ok)
	cache.InvalidateSpecialist(ctx, 1, 2)

	assert.False(t, cache.Set(ctx, 1, 2, monday, gen, []string{"08:00"}))
	assert.False(t, mr.Exists("slots:1:2:2024-06-03"))
}

func TestSlotCache_GenerationIsPerSpecialist(t *testing.T) {
	cache, _ := newTestSlotCache(t, time.Minute)
	ctx := context.Background()

	gen, ok := cache.Generation(ctx, 1, 3)
	require.True(t, ok)
	cache.InvalidateDate(ctx, 1, 2, monday)

	assert.True(t, cache.Set(ctx, 1, 3, monday, gen, []string{"08:00"}))
}

func TestSlotCache_RedisDownIsNonFatal(t *testing.T) {
	cache, mr := newTestSlotCache(t, time.Minute)
	ctx := context.Background()
	mr.Close()

	assert.NotPanics(t, func() {
		cache.Set(ctx, 1, 2, monday, 0, []string{"08:00"})
		_, ok := cache.Get(ctx, 1, 2, monday)
		assert.False(t, ok)
		cache.InvalidateDate(ctx, 1, 2, monday)
		cache.InvalidateSpecialist(ctx, 1, 2)
		_, ok = cache.Generation(ctx, 1, 2)
		assert.False(t, ok)
	})
}

func TestSlotCache_NilIsDisabled(t *testing.T) {
	var cache *SlotCache
	ctx := context.Background()

	assert.Nil(t, NewSlotCache(nil, logrus.New(), time.Minute))
	assert.NotPanics(t, func() {
		cache.Set(ctx, 1, 2, monday, 0, []string{"08:00"})
		_, ok := cache.Get(ctx, 1, 2, monday)
		assert.False(t, ok)
		cache.InvalidateSpecialist(ctx, 1, 2)
	})
}
