// Package dedupe tracks observation-record IDs so the same observation is
// never folded into a history twice. Replays and UI double-submits make
// duplicate records an expected input, not an error.
package dedupe

import (
	"context"
	"sync"
)

// Deduper records seen observation IDs for at-most-once ingestion.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true if id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets an ID so a record that failed downstream can be
	// retried.
	Unrecord(ctx context.Context, id string)

	// Size returns the number of IDs currently remembered.
	Size() int
}

// ringDeduper implements Deduper with a bounded FIFO window: once the window
// fills, the oldest remembered ID is evicted. maxSize <= 0 means unbounded.
//
// seen maps each ID to the order slot it occupies (slotUnbounded when no
// window applies). An unrecorded ID leaves a stale string behind in its slot;
// eviction therefore only forgets an ID when the slot still owns it, so a
// stale slot can never evict an ID that was re-recorded elsewhere.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]int
	order   []string
	head    int
	maxSize int
}

// slotUnbounded marks an ID remembered without a window slot.
const slotUnbounded = -1

// New creates a deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &ringDeduper{
		seen:    map[string]int{},
		maxSize: defaultWindowSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.maxSize > 0 {
		d.order = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize <= 0 {
		d.seen[id] = slotUnbounded
		return false
	}
	if len(d.order) < d.maxSize {
		d.seen[id] = len(d.order)
		d.order = append(d.order, id)
		return false
	}
	// Window full: overwrite the oldest slot. The old ID is forgotten only
	// while the slot still owns it.
	old := d.order[d.head]
	if slot, ok := d.seen[old]; ok && slot == d.head {
		delete(d.seen, old)
	}
	d.order[d.head] = id
	d.seen[id] = d.head
	d.head = (d.head + 1) % d.maxSize
	return false
}

func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, id)
}

func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
