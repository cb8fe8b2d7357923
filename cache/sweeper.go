package cache

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// Expirable is a cache that can drop all of its expired entries at once
type Expirable interface {
	EvictExpired() int
}

// Sweeper periodically evicts expired entries from a cache so stale entries
// do not pile up between reads
type Sweeper struct {
	interval time.Duration
	target   Expirable
	name     string
	wg       sync.WaitGroup
	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
}

// NewSweeper creates a Sweeper for target running every interval
func NewSweeper(interval time.Duration, target Expirable, name string) *Sweeper {
	return &Sweeper{
		interval: interval,
		target:   target,
		name:     name,
	}
}

// Start begins sweeping at the configured interval. Starting a running
// sweeper is a no-op.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval <= 0 {
		return fmt.Errorf("sweeper %s: interval must be positive, got %s", s.name, s.interval)
	}
	if s.running {
		return nil
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Printf("CacheSweeper: %s sweeping every %s", s.name, s.interval)
	return nil
}

// Stop terminates the sweeping goroutine and waits for it to exit
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.running = false
}

// IsRunning returns true if the sweeper goroutine is active
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Sweep evicts expired entries once and returns how many were removed
func (s *Sweeper) Sweep() int {
	evicted := s.target.EvictExpired()
	if evicted > 0 {
		log.Printf("CacheSweeper: %s evicted %d expired entries", s.name, evicted)
	}
	return evicted
}
