// Package queue implements the shared event queue that connects hackathon
// producers and students.
//
// A Queue is unbounded and unordered across senders: Send never waits for
// capacity and Receive blocks until some event is available. Nothing in a run
// relies on delivery order between different senders.
package queue

import (
	"context"
	"errors"

	"github.com/dyluth/hackathon/pkg/event"
)

// ErrClosed is returned by Send after Close, and by Receive once the queue is
// closed and has nothing left to deliver. Within a run it means the
// termination protocol is broken and the caller should give up.
var ErrClosed = errors.New("queue closed")

// Queue is a multi-producer, multi-consumer event channel.
type Queue interface {
	// Send enqueues ev. It never blocks on capacity.
	Send(ctx context.Context, ev event.Event) error

	// Receive blocks until an event is available or ctx is done.
	Receive(ctx context.Context) (event.Event, error)

	// Close releases the queue. Safe to call more than once.
	Close() error
}
