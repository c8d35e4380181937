// Package events carries report-insertion notifications from whatever writes
// report records (the backend bridge, the fake backend in tests) to
// completion watchers. Delivery is best-effort: a subscriber that is not
// draining its channel misses the event, and the watcher's poll loop is the
// backstop.
package events

import (
	"sync"

	"github.com/RayanBabar/validator-ai/internal/domain/report"
)

// Bus is an in-process report event stream, fanned out per thread.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan report.Record
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan report.Record)}
}

// Publish delivers a record to every subscriber of its thread. Never blocks.
func (b *Bus) Publish(rec report.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs[rec.ThreadID] {
		select {
		case ch <- rec:
		default:
		}
	}
}

// Subscribe registers for report insertions scoped to one thread. The
// returned cancel func releases the subscription; it is safe to call more
// than once.
func (b *Bus) Subscribe(threadID string) (<-chan report.Record, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan report.Record, 1)
	if b.subs[threadID] == nil {
		b.subs[threadID] = make(map[int]chan report.Record)
	}
	b.subs[threadID][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[threadID], id)
			if len(b.subs[threadID]) == 0 {
				delete(b.subs, threadID)
			}
		})
	}
	return ch, cancel
}
