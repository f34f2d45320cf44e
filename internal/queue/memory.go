package queue

import (
	"context"
	"sync"

	"github.com/dyluth/hackathon/pkg/event"
)

var (
	_ Queue = (*Memory)(nil)
	_ Queue = (*Redis)(nil)
)

// Memory is an in-process unbounded FIFO queue.
//
// Waiting receivers are woken through a one-slot channel. Every Send posts a
// wake-up, and a receiver that leaves items behind posts another one, so a
// wake-up is never lost while events are pending.
type Memory struct {
	mu     sync.Mutex
	items  []event.Event
	closed bool
	ready  chan struct{}
	done   chan struct{}
	once   sync.Once
}

// NewMemory creates an empty in-memory queue.
func NewMemory() *Memory {
	return &Memory{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Send appends ev to the back of the queue.
func (m *Memory) Send(ctx context.Context, ev event.Event) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.items = append(m.items, ev)
	m.mu.Unlock()

	m.wake()
	return nil
}

// Receive pops the event at the front of the queue, waiting if it is empty.
func (m *Memory) Receive(ctx context.Context) (event.Event, error) {
	for {
		if err := ctx.Err(); err != nil {
			return event.Event{}, err
		}

		m.mu.Lock()
		if len(m.items) > 0 {
			ev := m.items[0]
			m.items[0] = event.Event{}
			m.items = m.items[1:]
			more := len(m.items) > 0
			m.mu.Unlock()

			if more {
				m.wake()
			}
			return ev, nil
		}
		closed := m.closed
		m.mu.Unlock()

		if closed {
			return event.Event{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return event.Event{}, ctx.Err()
		case <-m.done:
		case <-m.ready:
		}
	}
}

// Len returns the number of events currently queued.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops accepting events. Receivers drain whatever is left and then get
// ErrClosed.
func (m *Memory) Close() error {
	m.once.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()
		close(m.done)
	})
	return nil
}

func (m *Memory) wake() {
	select {
	case m.ready <- struct{}{}:
	default:
	}
}
