// Package event defines the messages exchanged between hackathon producers and
// students.
//
// # Overview
//
// Every piece of coordination in a run travels through one shared, unordered
// queue as an Event. There are exactly three kinds:
//
//   - new_idea: an Idea looking for an idle student
//   - package_ready: a Package that any student may add to its inventory
//   - work_done: a termination sentinel with no payload
//
// Events are immutable once constructed. Ownership moves to whichever
// goroutine receives the event; a student that cannot use an event sends the
// same payload back into the queue.
//
// # Usage Example
//
//	idea := event.Idea{Name: "Toaster for Dentists", PackagesRequired: 3}
//	ev := event.NewIdea(idea)
//	if err := ev.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
//	data, err := event.Marshal(ev)
//
// # Redis Schema
//
// When a run uses the Redis-backed queue the events are JSON-encoded and kept
// in a single list per run:
//
//	hackathon:{run_id}:events
package event
