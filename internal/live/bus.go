// Package live turns the reader's store into push-based projections.
//
// Writers announce which tables they touched on a Bus. Watch re-runs a
// loader whenever one of its tables changes and pushes the new snapshot to
// the subscriber; CombineLatest joins several such streams into one.
//
//	changes := live.NewBus()
//	verses := live.Watch(ctx, changes, loadVerses, "verses")
//	for snap := range verses {
//		...
//	}
//
// Streams are latest-value-wins: a slow consumer skips intermediate
// snapshots instead of queueing them, but never sees them out of order.
package live

import "sync"

// Bus fans out table change notifications to subscribers.
type Bus struct {
	mu   sync.RWMutex
	subs map[*subscription]struct{}
}

type subscription struct {
	tables map[string]struct{}
	ch     chan struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*subscription]struct{})}
}

// Subscribe returns a channel that is signalled after any of the given
// tables change. Signals coalesce: several publishes before the subscriber
// wakes up are delivered as one. With no tables, every publish matches.
func (b *Bus) Subscribe(tables ...string) (<-chan struct{}, func()) {
	sub := &subscription{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan struct{}, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
		})
	}
	return sub.ch, unsubscribe
}

// Publish notifies subscribers of the given tables. It never blocks.
func (b *Bus) Publish(tables ...string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		if !sub.matches(tables) {
			continue
		}
		select {
		case sub.ch <- struct{}{}:
		default:
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (s *subscription) matches(tables []string) bool {
	if len(s.tables) == 0 {
		return true
	}
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}
