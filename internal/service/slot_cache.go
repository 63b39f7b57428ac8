package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// RedisSlotKeyPrefix namespaces cached slot lists: slots:{tenant}:{specialist}:{date}
	RedisSlotKeyPrefix = "slots:"

	// RedisSlotGenerationPrefix namespaces the per-specialist write generation:
	// slots:gen:{tenant}:{specialist}. Every invalidation increments it.
	RedisSlotGenerationPrefix = "slots:gen:"

	// Timeout for individual Redis operations
	slotCacheTimeout = 2 * time.Second

	// Keys fetched per SCAN round during invalidation
	slotScanCount = 200
)

var errStaleGeneration = errors.New("slot generation changed")

// =============================================================================
// Types
// =============================================================================

// SlotCache keeps computed slot lists in Redis for a short TTL.
//
// A listing reads the specialist's generation before computing and Set only
// writes while it is unchanged, so a list computed before a booking or a
// schedule change is never stored after the matching invalidation.
//
// Every failure is logged and swallowed: a broken cache degrades to a miss and
// never fails the request. A nil *SlotCache is a valid, disabled cache.
type SlotCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

// =============================================================================
// Constructor
// =============================================================================

// NewSlotCache returns nil when ttl <= 0 so callers can pass the result around
// without checking whether caching is enabled.
func NewSlotCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotCache {
	if redisClient == nil || ttl <= 0 {
		return nil
	}
	return &SlotCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// =============================================================================
// Public Methods
// =============================================================================

// Get returns the cached slots and true on a hit.
func (c *SlotCache) Get(ctx context.Context, tenantID, specialistID uint, date time.Time) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	key := slotKey(tenantID, specialistID, date)
	raw, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read slot cache %s: %+v", key, err)
		}
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		c.log.Warnf("Discarding corrupt slot cache entry %s: %+v", key, err)
		return nil, false
	}
	if slots == nil {
		slots = []string{}
	}

	c.log.Debugf("Slot cache hit %s", key)
	return slots, true
}

// Generation returns the specialist's current write generation. ok is false
// when Redis cannot be read; callers then skip Set.
func (c *SlotCache) Generation(ctx context.Context, tenantID, specialistID uint) (int64, bool) {
	if c == nil {
		return 0, false
	}
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	key := generationKey(tenantID, specialistID)
	gen, err := c.redisClient.Get(ctx, key).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warnf("Failed to read slot generation %s: %+v", key, err)
		return 0, false
	}
	return gen, true
}

// Set stores slots under the day key with the configured TTL, provided the
// specialist's generation still equals generation. It reports whether the
// entry was written.
func (c *SlotCache) Set(ctx context.Context, tenantID, specialistID uint, date time.Time, generation int64, slots []string) bool {
	if c == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	key := slotKey(tenantID, specialistID, date)
	genKey := generationKey(tenantID, specialistID)
	raw, err := json.Marshal(slots)
	if err != nil {
		c.log.Warnf("Failed to encode slots for %s: %+v", key, err)
		return false
	}

	err = c.redisClient.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
		c.log.Debugf("Cached %d slots at %s (TTL=%v)", len(slots), key, c.ttl)
		return true
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		c.log.Debugf("Skipped stale slot cache write %s", key)
	default:
		c.log.Warnf("Failed to write slot cache %s: %+v", key, err)
	}
	return false
}

// InvalidateDate drops the cached list of one specialist day.
// Called after an appointment is created or changes status.
func (c *SlotCache) InvalidateDate(ctx context.Context, tenantID, specialistID uint, date time.Time) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	key := slotKey(tenantID, specialistID, date)
	pipe := c.redisClient.TxPipeline()
	pipe.Incr(ctx, generationKey(tenantID, specialistID))
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warnf("Failed to invalidate slot cache %s: %+v", key, err)
		return
	}
	c.log.Debugf("Invalidated slot cache %s", key)
}

// InvalidateSpecialist drops every cached day of a specialist.
// Called after the weekly schedule or breaks are replaced.
//
// Keys are collected with SCAN and deleted one pipeline per round so a large
// keyspace never builds a single huge command.
func (c *SlotCache) InvalidateSpecialist(ctx context.Context, tenantID, specialistID uint) {
	if c == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, slotCacheTimeout)
	defer cancel()

	genKey := generationKey(tenantID, specialistID)
	if err := c.redisClient.Incr(ctx, genKey).Err(); err != nil {
		c.log.Warnf("Failed to bump slot generation %s: %+v", genKey, err)
		return
	}

	pattern := fmt.Sprintf("%s%d:%d:*", RedisSlotKeyPrefix, tenantID, specialistID)
	var (
		cursor  uint64
		removed int
	)
	for {
		keys, next, err := c.redisClient.Scan(ctx, cursor, pattern, slotScanCount).Result()
		if err != nil {
			c.log.Warnf("Failed to scan slot cache %s: %+v", pattern, err)
			return
		}

		if len(keys) > 0 {
			pipe := c.redisClient.Pipeline()
			for _, key := range keys {
				pipe.Del(ctx, key)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				c.log.Warnf("Failed to delete slot cache keys %s: %+v", pattern, err)
				return
			}
			removed += len(keys)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	c.log.Debugf("Invalidated %d slot cache keys for %s", removed, pattern)
}

// =============================================================================
// Private Helper Methods
// =============================================================================

func generationKey(tenantID, specialistID uint) string {
	return fmt.Sprintf("%s%d:%d", RedisSlotGenerationPrefix, tenantID, specialistID)
}

func slotKey(tenantID, specialistID uint, date time.Time) string {
	return fmt.Sprintf("%s%d:%d:%s", RedisSlotKeyPrefix, tenantID, specialistID, date.Format(DateFormat))
}
