package event

import (
	"encoding/json"
	"fmt"
)

// Marshal validates ev and encodes it as compact JSON for queue backends that
// carry bytes.
func Marshal(ev Event) ([]byte, error) {
	if err := ev.Validate(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// Unmarshal decodes and validates an event produced by Marshal.
func Unmarshal(data []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}
