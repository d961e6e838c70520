package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"rastreio/internal/detector"
)

// entry is an in-memory cached detection result list with expiry.
type entry struct {
	results   []detector.Result
	expiresAt time.Time
}

func (e *entry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// Config configures a cache Manager. Injected explicitly so tests can
// construct managers with short TTLs and no background cleanup.
type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	Disabled        bool
}

// DefaultConfig returns the production cache configuration.
func DefaultConfig() Config {
	return Config{
		TTL:             5 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Manager caches context-free detection results keyed by normalized code and
// candidate-set options. It has an explicit lifecycle: construct, Start the
// cleanup loop, Close when done. User-personalized detections must not be
// cached here, since history changes between calls.
type Manager struct {
	cfg    Config
	memory sync.Map // map[string]*entry

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewManager creates a cache manager. Call Start to begin expiry cleanup.
func NewManager(cfg Config) *Manager {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultConfig().CleanupInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:    cfg,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Key builds the cache key for a detection call. Only options that change
// the candidate set or filtering participate.
func Key(code string, opts detector.Options) string {
	return fmt.Sprintf("%s|%s|%t|%d|%d",
		detector.Normalize(code), opts.Country, opts.DomesticOnly,
		opts.MinConfidence, opts.MaxResults)
}

// Get retrieves cached results. The second return is false on a miss.
func (m *Manager) Get(key string) ([]detector.Result, bool) {
	if m.cfg.Disabled {
		return nil, false
	}

	value, ok := m.memory.Load(key)
	if !ok {
		return nil, false
	}

	cached := value.(*entry)
	if cached.isExpired() {
		m.memory.Delete(key)
		return nil, false
	}
	return cached.results, true
}

// Set stores detection results under the key.
func (m *Manager) Set(key string, results []detector.Result) {
	if m.cfg.Disabled {
		return
	}
	m.memory.Store(key, &entry{
		results:   results,
		expiresAt: time.Now().Add(m.cfg.TTL),
	})
}

// IsEnabled returns true if caching is enabled.
func (m *Manager) IsEnabled() bool {
	return !m.cfg.Disabled
}

// Start launches the background cleanup loop. Safe to call once; a disabled
// manager never starts the loop.
func (m *Manager) Start() {
	if m.cfg.Disabled {
		return
	}
	m.once.Do(func() {
		go m.cleanupLoop()
	})
}

// Close shuts down the cleanup loop.
func (m *Manager) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// cleanupLoop runs periodically to clean up expired entries.
func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

// cleanup removes expired entries.
func (m *Manager) cleanup() {
	removed := 0
	m.memory.Range(func(key, value interface{}) bool {
		if value.(*entry).isExpired() {
			m.memory.Delete(key)
			removed++
		}
		return true
	})

	if removed > 0 {
		log.Printf("DEBUG: Cleaned up %d expired detection cache entries", removed)
	}
}
