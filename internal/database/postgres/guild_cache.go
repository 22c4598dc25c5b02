package postgres

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/realmkeeper/internal/domain"
)

// cachedGuildEntry wraps a guild record with version metadata for cache invalidation
type cachedGuildEntry struct {
	Version  string
	Guild    domain.GuildRecord
	CachedAt time.Time
}

// guildCache is an in-memory LRU of guild records keyed by lower-cased name
type guildCache struct {
	lru *expirable.LRU[string, *cachedGuildEntry]
}

func newGuildCache(size int, ttl time.Duration) *guildCache {
	return &guildCache{
		lru: expirable.NewLRU[string, *cachedGuildEntry](size, nil, ttl),
	}
}

func cacheKey(name string) string {
	return strings.ToLower(name)
}

// Get returns the cached record, dropping entries written by an older schema
func (c *guildCache) Get(name string) (domain.GuildRecord, bool) {
	key := cacheKey(name)
	entry, found := c.lru.Get(key)
	if !found {
		return domain.GuildRecord{}, false
	}
	if entry.Version != GuildCacheSchemaVersion {
		c.lru.Remove(key)
		return domain.GuildRecord{}, false
	}
	return entry.Guild, true
}

func (c *guildCache) Set(rec domain.GuildRecord) {
	c.lru.Add(cacheKey(rec.Name), &cachedGuildEntry{
		Version:  GuildCacheSchemaVersion,
		Guild:    rec,
		CachedAt: time.Now(),
	})
}

func (c *guildCache) Len() int {
	return c.lru.Len()
}
