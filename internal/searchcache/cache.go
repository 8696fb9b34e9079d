// Package searchcache keeps recent provider responses in Redis so repeated
// queries inside a research loop do not burn provider quota. Cache entries
// are provider payloads only; session state never touches Redis.
package searchcache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/l0he1g/BaYeAgent/internal/research"
	"github.com/l0he1g/BaYeAgent/tools/web_search/models"
)

const DefaultTTL = 10 * time.Minute

// Cache is a TTL cache of search hits keyed by query and freshness window.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func New(addr, password string, db int, ttl time.Duration) *Cache {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	return NewWithClient(rdb, ttl)
}

// NewWithClient wraps an existing client; tests hand in a miniredis-backed one.
func NewWithClient(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		ttl:    ttl,
		logger: log.New(log.Writer(), "[CACHE] ", log.LstdFlags),
	}
}

// Get returns the cached hits for a query, if present. Redis trouble is
// logged and reported as a miss; the cache must never fail a search.
func (c *Cache) Get(ctx context.Context, query string, freshness research.Freshness) ([]models.Hit, bool) {
	val, err := c.client.Get(ctx, key(query, freshness)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Printf("get failed: %v", err)
		return nil, false
	}
	var hits []models.Hit
	if err := json.Unmarshal([]byte(val), &hits); err != nil {
		c.logger.Printf("corrupt cache entry dropped: %v", err)
		return nil, false
	}
	return hits, true
}

// Put stores the hits for a query. Failures are logged and ignored.
func (c *Cache) Put(ctx context.Context, query string, freshness research.Freshness, hits []models.Hit) {
	data, err := json.Marshal(hits)
	if err != nil {
		c.logger.Printf("marshal failed: %v", err)
		return
	}
	if err := c.client.Set(ctx, key(query, freshness), data, c.ttl).Err(); err != nil {
		c.logger.Printf("set failed: %v", err)
	}
}

func key(query string, freshness research.Freshness) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("search:%s:%s", freshness, hex.EncodeToString(sum[:]))
}
