package registry

import (
	"context"
	"sync"
	"time"
)

const defaultEventBuffer = 16

// EventType distinguishes successful and failed reloads.
type EventType string

const (
	EventReloaded EventType = "reloaded"
	EventFailed   EventType = "failed"
)

// Event describes one Preload outcome.
type Event struct {
	Type       EventType
	SnapshotID string
	Styles     int
	Err        error
	Timestamp  time.Time
}

// broker fans events out to subscribers. Publish never blocks: a subscriber whose
// buffer is full misses the event.
type broker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
	done chan struct{}
	size int
}

func newBroker(size int) *broker {
	return &broker{
		subs: make(map[chan Event]struct{}),
		done: make(chan struct{}),
		size: size,
	}
}

func (b *broker) subscribe(ctx context.Context) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event)
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event, b.size)
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return
		default:
		}
		delete(b.subs, sub)
		close(sub)
	}()

	return sub
}

func (b *broker) publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	select {
	case <-b.done:
		return
	default:
	}

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	for sub := range b.subs {
		select {
		case sub <- ev:
		default:
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		return
	default:
	}

	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

func (b *broker) count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
