// Package cache provides caching for rendered images and query results.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/allegro/bigcache/v3"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config contains cache configuration.
type Config struct {
	ImageCacheSizeMB int
	ImageTTL         time.Duration
	QueryCacheSize   int
}

// Manager manages image and query caches.
type Manager struct {
	imageCache *bigcache.BigCache
	queryCache *lru.Cache[string, []byte]
}

// NewManager creates a new cache manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.ImageTTL <= 0 {
		cfg.ImageTTL = 10 * time.Minute
	}
	if cfg.QueryCacheSize <= 0 {
		cfg.QueryCacheSize = 1000
	}

	// Configure image cache
	imageCacheConfig := bigcache.Config{
		Shards:             64,
		LifeWindow:         cfg.ImageTTL,
		CleanWindow:        cfg.ImageTTL / 2,
		MaxEntriesInWindow: 10000,
		MaxEntrySize:       16 * 1024, // colorbars and swatch strips are small
		HardMaxCacheSize:   cfg.ImageCacheSizeMB,
		Verbose:            false,
	}

	imageCache, err := bigcache.New(context.Background(), imageCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}

	// Create query cache
	queryCache, err := lru.New[string, []byte](cfg.QueryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	return &Manager{
		imageCache: imageCache,
		queryCache: queryCache,
	}, nil
}

// GetImage retrieves an image from cache.
func (m *Manager) GetImage(key string) ([]byte, bool) {
	data, err := m.imageCache.Get(key)
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetImage stores an image in cache.
func (m *Manager) SetImage(key string, data []byte) error {
	return m.imageCache.Set(key, data)
}

// GetQuery retrieves a query result from cache.
func (m *Manager) GetQuery(key string) ([]byte, bool) {
	return m.queryCache.Get(key)
}

// SetQuery stores a query result in cache.
func (m *Manager) SetQuery(key string, data []byte) {
	m.queryCache.Add(key, data)
}

// Params identifies one colormap variant. Colors is set for custom
// anchor lists and empty for named colormaps.
type Params struct {
	Name   string
	Colors []string
	Stages int
	Alpha  float64 // 0 means opaque
}

func (p Params) String() string {
	base := fmt.Sprintf("%s:s=%d:a=%g", p.Name, p.Stages, p.Alpha)
	if len(p.Colors) == 0 {
		return base
	}

	// Hash anchors for cache key; hex case does not change the colormap.
	h := sha256.New()
	for _, c := range p.Colors {
		h.Write([]byte(strings.ToUpper(strings.TrimPrefix(c, "#"))))
		h.Write([]byte{0})
	}
	return base + ":" + hex.EncodeToString(h.Sum(nil))[:16]
}

// SamplesKey generates a cache key for colormap samples.
func SamplesKey(p Params) string {
	return "samples:" + p.String()
}

// ColorbarKey generates a cache key for a colorbar image.
func ColorbarKey(p Params, width, height int) string {
	return fmt.Sprintf("colorbar:%dx%d:%s", width, height, p)
}

// SwatchKey generates a cache key for a palette swatch strip.
func SwatchKey(palette string, size int) string {
	return fmt.Sprintf("swatch:%s:%d", palette, size)
}

// Stats returns cache statistics.
func (m *Manager) Stats() map[string]interface{} {
	return map[string]interface{}{
		"image_cache_len": m.imageCache.Len(),
		"image_cache_cap": m.imageCache.Capacity(),
		"query_cache_len": m.queryCache.Len(),
	}
}

// Close closes the cache manager.
func (m *Manager) Close() error {
	return m.imageCache.Close()
}
