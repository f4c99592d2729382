package data

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/coinmetrics-lab/dca-backtest/pkg/types"
)

// MemoryCache implements DataCache using in-memory storage. Copies are taken
// on both ends so cached data stays immutable.
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{cache: make(map[string][]types.OHLCV)}
}

func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, exists := c.cache[key]
	if !exists {
		return nil, false
	}
	result := make([]types.OHLCV, len(data))
	copy(result, data)
	return result, true
}

func (c *MemoryCache) Set(key string, data []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.OHLCV, len(data))
	copy(cached, data)
	c.cache[key] = cached
}

func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string][]types.OHLCV)
}

func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CachedProvider wraps another DataProvider with caching, so a sweep over
// many parameter sets reads the file once.
type CachedProvider struct {
	provider DataProvider
	cache    DataCache
}

func NewCachedProvider(provider DataProvider) *CachedProvider {
	return &CachedProvider{provider: provider, cache: NewMemoryCache()}
}

func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

func (p *CachedProvider) LoadData(source string) ([]types.OHLCV, error) {
	if cachedData, exists := p.cache.Get(source); exists {
		return cachedData, nil
	}

	log.Printf("🔄 Loading historical data from %s", filepath.Base(source))
	data, err := p.provider.LoadData(source)
	if err != nil {
		return nil, err
	}

	p.cache.Set(source, data)
	log.Printf("✅ Loaded and cached data from %s (%d records)", filepath.Base(source), len(data))
	return data, nil
}

func (p *CachedProvider) ValidateData(data []types.OHLCV) error {
	return p.provider.ValidateData(data)
}

func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}
