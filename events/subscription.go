package events

import (
	"context"
	"sync"
)

// ISubscription is one listener of board publications
type ISubscription interface {
	// Chan returns a read-only channel that receives a signal after each publication
	Chan() <-chan struct{}
	// Cancel unsubscribes and closes the channel. Safe for repeated calls
	Cancel()
}

// ISubscriptionManager fans publication signals out to subscribers
type ISubscriptionManager interface {
	Subscribe() ISubscription
	Unsubscribe(ch chan struct{})
	Emit(ctx context.Context)
}

// Subscription holds a channel with room for one pending signal.
// Signals coalesce: a subscriber that falls behind sees one signal, not a backlog.
type Subscription struct {
	ch   chan struct{}
	mgr  *SubscriptionManager
	once sync.Once
}

func (s *Subscription) Chan() <-chan struct{} { return s.ch }

func (s *Subscription) Cancel() {
	s.once.Do(func() {
		s.mgr.Unsubscribe(s.ch)
	})
}

// SubscriptionManager tracks subscribers and notifies them without blocking the publisher
type SubscriptionManager struct {
	mu          sync.RWMutex
	subscribers map[chan struct{}]struct{}
	emitted     uint64
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subscribers: make(map[chan struct{}]struct{}),
	}
}

func (m *SubscriptionManager) Subscribe() ISubscription {
	ch := make(chan struct{}, 1)

	m.mu.Lock()
	m.subscribers[ch] = struct{}{}
	m.mu.Unlock()

	return &Subscription{ch: ch, mgr: m}
}

func (m *SubscriptionManager) Unsubscribe(ch chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subscribers[ch]; ok {
		delete(m.subscribers, ch)
		close(ch)
	}
}

// Emit signals every subscriber; a subscriber with a pending signal is skipped
func (m *SubscriptionManager) Emit(ctx context.Context) {
	m.mu.Lock()
	m.emitted++
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for sub := range m.subscribers {
		select {
		case <-ctx.Done():
			return
		case sub <- struct{}{}:
		default:
		}
	}
}

// SubscriberCount returns the number of live subscriptions
func (m *SubscriptionManager) SubscriberCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Emitted returns how many times Emit was called
func (m *SubscriptionManager) Emitted() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.emitted
}

// Close unsubscribes everyone; their channels are closed
func (m *SubscriptionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for ch := range m.subscribers {
		delete(m.subscribers, ch)
		close(ch)
	}
}
