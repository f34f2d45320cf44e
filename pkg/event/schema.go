package event

import "fmt"

// Redis key helpers
//
// All keys are namespaced by run ID so several runs can share one Redis server.
//
// Key pattern: hackathon:{run_id}:{entity}

// EventsKey returns the Redis list holding a run's pending events.
// Pattern: hackathon:{run_id}:events
func EventsKey(runID string) string {
	return fmt.Sprintf("hackathon:%s:events", runID)
}
