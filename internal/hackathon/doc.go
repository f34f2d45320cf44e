// Package hackathon wires a complete run: it splits the configured counts
// across producer goroutines, starts one goroutine per student, waits for all
// of them and reports the four checksums that decide whether the run was
// correct.
package hackathon
