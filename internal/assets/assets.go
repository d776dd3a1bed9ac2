// Package assets handles input asset loading and caching.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/geoglobe/internal/logger"
)

// ErrNotFound is returned when no search root holds the requested asset.
var ErrNotFound = errors.New("asset not found")

// Manager handles asset loading from directories on disk.
type Manager struct {
	roots []string
	cache *Cache
	mu    sync.RWMutex
}

// NewManager creates a new asset manager searching the given roots.
// Roots are searched in reverse order (last = highest priority).
func NewManager(roots ...string) *Manager {
	m := &Manager{
		cache: NewCache(),
	}
	for _, r := range roots {
		m.roots = append(m.roots, filepath.Clean(r))
	}
	return m
}

// AddRoot adds a search directory to the manager.
func (m *Manager) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("opening asset root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("asset root %s is not a directory", dir)
	}

	m.mu.Lock()
	m.roots = append(m.roots, filepath.Clean(dir))
	m.mu.Unlock()

	return nil
}

// Roots returns the search roots in priority order, highest first.
func (m *Manager) Roots() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.roots))
	for i := len(m.roots) - 1; i >= 0; i-- {
		out = append(out, m.roots[i])
	}
	return out
}

// Resolve returns the file path an asset name refers to. Absolute names and
// names reachable from the working directory win when no root has them.
func (m *Manager) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if isFile(name) {
			return name, nil
		}
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	for _, root := range m.Roots() {
		p := filepath.Join(root, name)
		if isFile(p) {
			return p, nil
		}
	}
	if isFile(name) {
		return name, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load loads an asset, reading it from disk once and serving repeats from cache.
func (m *Manager) Load(name string) ([]byte, error) {
	path, err := m.Resolve(name)
	if err != nil {
		return nil, err
	}

	// Check cache first
	if data, ok := m.cache.Get(path); ok {
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading asset %s: %w", path, err)
	}
	m.cache.Set(path, data)

	logger.Debug("asset loaded", zap.String("name", name), zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// Cache exposes the manager's cache, mainly for statistics.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Close drops all roots and cached data.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.roots = nil
	m.cache.Clear()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Cache is a simple in-memory cache for loaded assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
