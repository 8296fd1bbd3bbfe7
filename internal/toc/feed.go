package toc

import (
	"slices"
	"sync"
)

// ScrollSource publishes scroll positions to subscribers. Subscribe returns
// the matching unsubscribe func; callers must release it.
type ScrollSource interface {
	ScrollY() float64
	Subscribe(fn func(scrollY float64)) (unsubscribe func())
}

// Feed is an in-process ScrollSource fed by Publish.
type Feed struct {
	mu   sync.Mutex
	y    float64
	next int
	subs map[int]func(float64)
}

// NewFeed creates an empty feed at scroll position 0.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]func(float64))}
}

// ScrollY implements ScrollSource.
func (f *Feed) ScrollY() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.y
}

// Subscribe implements ScrollSource. The returned func is idempotent.
func (f *Feed) Subscribe(fn func(float64)) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Publish records a new scroll position and notifies subscribers in
// subscription order. Subscribers run outside the feed lock.
func (f *Feed) Publish(scrollY float64) {
	f.mu.Lock()
	f.y = scrollY
	ids := make([]int, 0, len(f.subs))
	for id := range f.subs {
		ids = append(ids, id)
	}
	fns := make([]func(float64), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, f.subs[id])
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(scrollY)
	}
}

// Subscribers returns the number of live subscriptions.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
