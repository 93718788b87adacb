package services

import "sync"

// ChangeEvent describes a mutation to a cost sheet or one of its items.
// It is published by record hooks and streamed to websocket subscribers
// so open views can refresh without polling.
type ChangeEvent struct {
	Collection string `json:"collection"`
	RecordID   string `json:"record_id"`
	SheetID    string `json:"sheet_id,omitempty"`
	Status     string `json:"status,omitempty"`
}

// Filter narrows which events a subscriber receives. A zero Filter
// matches everything.
type Filter struct {
	SheetID string
}

func (f Filter) matches(ev ChangeEvent) bool {
	return f.SheetID == "" || f.SheetID == ev.SheetID
}

type subscriber struct {
	ch     chan ChangeEvent
	filter Filter
}

// Bus fans change events out to subscribers. Publishing never blocks:
// a subscriber whose buffer is full misses the event and is expected to
// resync on its next poll.
type Bus struct {
	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[*subscriber]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel and
// an unsubscribe function. The channel is closed on unsubscribe.
func (b *Bus) Subscribe(filter Filter) (<-chan ChangeEvent, func()) {
	sub := &subscriber{
		ch:     make(chan ChangeEvent, 16),
		filter: filter,
	}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, unsubscribe
}

// Publish delivers the event to every matching subscriber without blocking.
func (b *Bus) Publish(ev ChangeEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		if !sub.filter.matches(ev) {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
			// Subscriber is not keeping up; drop rather than stall.
		}
	}
}
