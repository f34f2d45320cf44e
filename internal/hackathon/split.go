package hackathon

// Split returns worker idx's share when total items are spread over workers.
// Each share is total/workers, and the first total%workers workers get one
// more, so the shares differ by at most one and always sum to total.
func Split(idx, total, workers int) int {
	share := total / workers
	if idx < total%workers {
		share++
	}
	return share
}
