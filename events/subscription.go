package events

import (
	"context"
	"sync"
)

// Change describes a successful write or delete on a repository
type Change struct {
	Repository string
	Operation  string
}

// ISubscription defines the contract for subscription objects
type ISubscription interface {
	// Chan returns a read-only channel for self-handling changes
	Chan() <-chan Change
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
	// Watch starts a goroutine that calls cb on each change.
	// When parentCtx finishes, the subscription is automatically cancelled
	Watch(parentCtx context.Context, cb func(Change)) ISubscription
}

// ISubscriptionManager defines the contract for managing subscriptions
type ISubscriptionManager interface {
	// Subscribe creates a new subscription and returns it
	Subscribe() ISubscription
	// Emit sends the change to all subscribers (non-blocking if their channel is full)
	Emit(ctx context.Context, change Change)
}

type Subscription struct {
	ch     chan Change
	mgr    *SubscriptionManager
	once   sync.Once

	mu       sync.Mutex
	cancel   context.CancelFunc
	canceled bool
}

// Chan returns a read-only channel for self-handling changes
func (s *Subscription) Chan() <-chan Change { return s.ch }

// Cancel unsubscribes and closes the channel. Safe for repeated calls.
func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.canceled = true
		cancel := s.cancel
		s.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		s.mgr.unsubscribe(s.ch)
	})
}

// Watch starts a goroutine that calls cb on each change
func (s *Subscription) Watch(parentCtx context.Context, cb func(Change)) ISubscription {
	ctx, cancel := context.WithCancel(parentCtx)
	s.mu.Lock()
	if s.canceled {
		s.mu.Unlock()
		cancel()
		return s
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func(ctx context.Context) {
		defer s.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-s.ch:
				if !ok {
					return
				}
				cb(change)
			}
		}
	}(ctx)

	return s
}

// SubscriptionManager fans changes out to subscribers. A slow subscriber
// misses changes rather than blocking the writer.
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan Change]struct{}
	bufferSize  int
}

// NewSubscriptionManager creates a manager whose subscriptions buffer up to
// bufferSize changes
func NewSubscriptionManager(bufferSize int) *SubscriptionManager {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &SubscriptionManager{
		subscribers: make(map[chan Change]struct{}),
		bufferSize:  bufferSize,
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan Change, m.bufferSize)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) unsubscribe(ch chan Change) {
	m.mu.Lock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
	m.mu.Unlock()
}

// Emit sends change to all subscribers (non-blocking if their channel is full)
func (m *SubscriptionManager) Emit(ctx context.Context, change Change) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- change:
		default:
		}
	}
}

// Subscribers returns the number of active subscriptions
func (m *SubscriptionManager) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}
