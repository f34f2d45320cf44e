// Package student implements the hackathon consumer.
//
// A Student holds at most one idea and a FIFO inventory of packages. It reacts
// to one event at a time:
//
//   - new_idea: adopt it when idle, otherwise send it back and remember that
//     an idea was deferred
//   - package_ready: add the package to the inventory
//   - work_done: send the sentinel back while holding or having just deferred
//     an idea, otherwise return the inventory to the queue and stop
//
// After every adoption or new package the student tries to build. A build
// consumes the held idea and the oldest packages it requires.
//
// Deferred ideas and sentinels are sent back into the same queue they came
// from. That recirculation is what lets an unknown number of students discover
// that the run is over without a coordinator.
package student

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/hackathon/internal/ledger"
	"github.com/dyluth/hackathon/internal/queue"
	"github.com/dyluth/hackathon/pkg/event"
)

// Student is the consumer state. It is owned by the goroutine calling Run and
// must not be shared.
type Student struct {
	id     int
	queue  queue.Queue
	ledger *ledger.Ledger

	idea         *event.Idea
	inventory    []event.Package
	deferredIdea bool
	builds       int
}

// New creates an idle student with an empty inventory.
func New(id int, q queue.Queue, l *ledger.Ledger) *Student {
	return &Student{
		id:     id,
		queue:  q,
		ledger: l,
	}
}

// Run receives and handles events until the student terminates or an error
// occurs. A queue error means the termination protocol was violated and is
// returned as is.
func (s *Student) Run(ctx context.Context) error {
	log.Printf("[Student %d] event=student_started", s.id)

	for {
		ev, err := s.queue.Receive(ctx)
		if err != nil {
			return fmt.Errorf("student %d: failed to receive event: %w", s.id, err)
		}

		done, err := s.Handle(ctx, ev)
		if err != nil {
			return err
		}
		if done {
			log.Printf("[Student %d] event=student_finished builds=%d", s.id, s.builds)
			return nil
		}
	}
}

// Handle applies a single event and reports whether the student has
// terminated.
func (s *Student) Handle(ctx context.Context, ev event.Event) (bool, error) {
	switch ev.Kind {
	case event.KindNewIdea:
		if ev.Idea == nil {
			return false, fmt.Errorf("student %d: %w: new_idea without idea", s.id, event.ErrInvalidEvent)
		}
		if s.idea != nil {
			if err := s.send(ctx, ev); err != nil {
				return false, err
			}
			s.deferredIdea = true
			return false, nil
		}
		idea := *ev.Idea
		s.idea = &idea
		s.tryBuild()
		return false, nil

	case event.KindPackageReady:
		if ev.Package == nil {
			return false, fmt.Errorf("student %d: %w: package_ready without package", s.id, event.ErrInvalidEvent)
		}
		s.inventory = append(s.inventory, *ev.Package)
		s.tryBuild()
		return false, nil

	case event.KindWorkDone:
		if s.deferredIdea || s.idea != nil {
			if err := s.send(ctx, ev); err != nil {
				return false, err
			}
			s.deferredIdea = false
			return false, nil
		}
		for len(s.inventory) > 0 {
			pkg := s.inventory[0]
			if err := s.send(ctx, event.PackageReady(pkg)); err != nil {
				return false, err
			}
			s.inventory = s.inventory[1:]
		}
		s.inventory = nil
		return true, nil

	default:
		return false, fmt.Errorf("student %d: %w", s.id, ev.Kind.Validate())
	}
}

// tryBuild builds the held idea once the inventory covers its requirement.
func (s *Student) tryBuild() {
	if s.idea == nil || len(s.inventory) < s.idea.PackagesRequired {
		return
	}

	n := s.idea.PackagesRequired
	used := make([]event.Package, n)
	copy(used, s.inventory[:n])
	s.inventory = s.inventory[n:]

	s.ledger.RecordBuild(s.id, *s.idea, used)
	s.builds++
	s.idea = nil
}

func (s *Student) send(ctx context.Context, ev event.Event) error {
	if err := s.queue.Send(ctx, ev); err != nil {
		return fmt.Errorf("student %d: failed to send %s: %w", s.id, ev, err)
	}
	return nil
}

// ID returns the student's identifier.
func (s *Student) ID() int { return s.id }

// Idea returns the idea currently held, or nil when idle.
func (s *Student) Idea() *event.Idea {
	if s.idea == nil {
		return nil
	}
	idea := *s.idea
	return &idea
}

// Inventory returns a copy of the packages held, oldest first.
func (s *Student) Inventory() []event.Package {
	out := make([]event.Package, len(s.inventory))
	copy(out, s.inventory)
	return out
}

// DeferredIdea reports whether an idea was sent back since the last
// sentinel this student deferred.
func (s *Student) DeferredIdea() bool { return s.deferredIdea }

// Builds returns how many ideas this student has built.
func (s *Student) Builds() int { return s.builds }
