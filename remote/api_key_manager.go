package remote

import (
	"log"
	"sync"
	"time"

	"github.com/haikuowuya/Rosie/timeprovider"
)

// AuthConfig configures API keys sent with every request. Without keys
// requests are sent anonymously.
type AuthConfig struct {
	Header  string        `yaml:"header"`  // Header carrying the key, "Authorization" by default
	Scheme  string        `yaml:"scheme"`  // Optional prefix such as "Bearer"
	Keys    []string      `yaml:"keys"`    // Keys in order of preference
	Backoff time.Duration `yaml:"backoff"` // How long a rejected key is skipped
}

const defaultKeyBackoff = 5 * time.Minute

// IAPIKeyManager defines the interface for API key management
type IAPIKeyManager interface {
	// GetAvailableKeys returns the keys to try in order. Keys in backoff are
	// skipped unless every key is in backoff. With no keys configured it
	// returns a single empty key.
	GetAvailableKeys() []string

	// MarkKeyAsFailed puts key in backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager rotates between configured API keys, skipping keys the
// remote API recently rejected
type APIKeyManager struct {
	keys        []string
	lastFailed  map[string]time.Time
	backoffTime time.Duration
	clock       timeprovider.TimeProvider
	mu          sync.RWMutex
}

// NewAPIKeyManager creates a new API key manager
func NewAPIKeyManager(cfg AuthConfig, clock timeprovider.TimeProvider) *APIKeyManager {
	backoff := cfg.Backoff
	if backoff <= 0 {
		backoff = defaultKeyBackoff
	}
	if clock == nil {
		clock = timeprovider.System{}
	}
	return &APIKeyManager{
		keys:        append([]string(nil), cfg.Keys...),
		lastFailed:  make(map[string]time.Time),
		backoffTime: backoff,
		clock:       clock,
	}
}

func (m *APIKeyManager) isKeyInBackoff(key string) bool {
	if lastFailTime, exists := m.lastFailed[key]; exists {
		return m.clock.Now().Sub(lastFailTime) < m.backoffTime
	}
	return false
}

// GetAvailableKeys returns the keys to try in order of preference
func (m *APIKeyManager) GetAvailableKeys() []string {
	if len(m.keys) == 0 {
		return []string{""}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	available := make([]string, 0, len(m.keys))
	for _, key := range m.keys {
		if !m.isKeyInBackoff(key) {
			available = append(available, key)
		}
	}
	if len(available) == 0 {
		return append(available, m.keys...)
	}
	return available
}

// MarkKeyAsFailed marks a key as non-working for some time
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFailed[key] = m.clock.Now()
	log.Printf("APIKeyManager: Marked key as failed for %v", m.backoffTime)
}
