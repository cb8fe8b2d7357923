package remote

import (
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetConfig(cfg RateLimitConfig)
}

// RateLimiterManager manages one rate limiter per remote host
type RateLimiterManager struct {
	mu            sync.RWMutex
	hostToLimiter map[string]*rate.Limiter
	config        RateLimitConfig
}

// NewRateLimiterManager creates a manager applying cfg to every host
func NewRateLimiterManager(cfg RateLimitConfig) *RateLimiterManager {
	return &RateLimiterManager{
		hostToLimiter: make(map[string]*rate.Limiter),
		config:        cfg,
	}
}

// SetConfig applies a new config and rebuilds existing limiters if it changed
func (m *RateLimiterManager) SetConfig(cfg RateLimitConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == cfg {
		return
	}
	m.config = cfg
	for host := range m.hostToLimiter {
		if limiter := m.newLimiterLocked(); limiter != nil {
			m.hostToLimiter[host] = limiter
		} else {
			delete(m.hostToLimiter, host)
		}
	}
}

// GetLimiterForURL returns the limiter of the URL's host, nil when rate
// limiting is disabled
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}
	host := u.Host

	m.mu.RLock()
	if lim, ok := m.hostToLimiter[host]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.hostToLimiter[host]; ok {
		return lim
	}
	limiter := m.newLimiterLocked()
	if limiter != nil {
		m.hostToLimiter[host] = limiter
	}
	return limiter
}

func (m *RateLimiterManager) newLimiterLocked() *rate.Limiter {
	if m.config.RateLimitPerMinute <= 0 {
		return nil
	}
	limit := rate.Limit(float64(m.config.RateLimitPerMinute) / 60.0)
	burst := m.config.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
