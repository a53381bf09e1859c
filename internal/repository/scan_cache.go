package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/wizelements/saas-opportunity-bot/internal/model"
)

const (
	scanCacheKeyPrefix = "oppbot:scan:"
	ScanCacheTTL       = 24 * time.Hour
)

// MemoryScanCache keeps the latest scan per session in process memory.
type MemoryScanCache struct {
	mu       sync.RWMutex
	sessions map[string][]model.Opportunity
}

func NewMemoryScanCache() *MemoryScanCache {
	return &MemoryScanCache{sessions: map[string][]model.Opportunity{}}
}

func (c *MemoryScanCache) Put(ctx context.Context, sessionID string, opps []model.Opportunity) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sessionID] = opps
	return nil
}

func (c *MemoryScanCache) Get(ctx context.Context, sessionID string) ([]model.Opportunity, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	opps, ok := c.sessions[sessionID]
	return opps, ok, nil
}

// RedisScanCache stores each session's scan as JSON with a fixed TTL.
type RedisScanCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisScanCache(client *redis.Client) *RedisScanCache {
	return &RedisScanCache{client: client, ttl: ScanCacheTTL}
}

func scanCacheKey(sessionID string) string {
	return scanCacheKeyPrefix + sessionID
}

func (c *RedisScanCache) Put(ctx context.Context, sessionID string, opps []model.Opportunity) error {
	data, err := json.Marshal(opps)
	if err != nil {
		return fmt.Errorf("encoding scan: %w", err)
	}
	return c.client.Set(ctx, scanCacheKey(sessionID), data, c.ttl).Err()
}

func (c *RedisScanCache) Get(ctx context.Context, sessionID string) ([]model.Opportunity, bool, error) {
	data, err := c.client.Get(ctx, scanCacheKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var opps []model.Opportunity
	if err := json.Unmarshal(data, &opps); err != nil {
		return nil, false, fmt.Errorf("decoding scan for session %s: %w", sessionID, err)
	}
	return opps, true, nil
}
