// Package producer implements the two hackathon work sources: idea generators
// and package downloaders. Both fold every item they emit into a shared
// produced-side checksum before sending it to the queue.
package producer

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/hackathon/internal/queue"
	"github.com/dyluth/hackathon/pkg/checksum"
	"github.com/dyluth/hackathon/pkg/event"
)

// IdeaName derives the name of the idea with global index i.
// Names walk the product × customer cross product in product-major order and
// repeat with period len(products)*len(customers).
func IdeaName(products, customers []string, i int) string {
	p := len(products)
	c := len(customers)
	k := i % (p * c)
	return fmt.Sprintf("%s for %s", products[k/c], customers[k%c])
}

// Requirements spreads numPackages across numIdeas ideas. Every idea needs
// numPackages/numIdeas packages and the first numPackages%numIdeas ideas need
// one more, so the result always sums to numPackages.
func Requirements(numPackages, numIdeas int) []int {
	if numIdeas <= 0 {
		return nil
	}

	base := numPackages / numIdeas
	extra := numPackages % numIdeas

	reqs := make([]int, numIdeas)
	for k := range reqs {
		reqs[k] = base
		if k < extra {
			reqs[k]++
		}
	}
	return reqs
}

// IdeaGenerator emits one producer's share of a run's ideas followed by one
// WorkDone sentinel per student it was assigned.
type IdeaGenerator struct {
	ID          int
	StartIndex  int // global index of this generator's first idea
	NumIdeas    int
	NumStudents int
	NumPackages int // packages this generator's ideas must consume in total
	Products    []string
	Customers   []string
}

// Run sends every idea, folding each name into produced first, then sends the
// sentinels. It returns the first queue error.
func (g *IdeaGenerator) Run(ctx context.Context, q queue.Queue, produced *checksum.Accumulator) error {
	if len(g.Products) == 0 || len(g.Customers) == 0 {
		return fmt.Errorf("idea generator %d: products and customers cannot be empty", g.ID)
	}
	if g.NumIdeas == 0 && g.NumPackages > 0 {
		return fmt.Errorf("idea generator %d: %d packages assigned but no ideas", g.ID, g.NumPackages)
	}

	g.logEvent("generator_started", map[string]interface{}{
		"start_index": g.StartIndex,
		"ideas":       g.NumIdeas,
		"packages":    g.NumPackages,
		"students":    g.NumStudents,
	})

	for k, required := range Requirements(g.NumPackages, g.NumIdeas) {
		idea := event.Idea{
			Name:             IdeaName(g.Products, g.Customers, g.StartIndex+k),
			PackagesRequired: required,
		}

		produced.Add(idea.Name)

		if err := q.Send(ctx, event.NewIdea(idea)); err != nil {
			return fmt.Errorf("idea generator %d: failed to send idea %q: %w", g.ID, idea.Name, err)
		}
	}

	for i := 0; i < g.NumStudents; i++ {
		if err := q.Send(ctx, event.WorkDone()); err != nil {
			return fmt.Errorf("idea generator %d: failed to send sentinel: %w", g.ID, err)
		}
	}

	g.logEvent("generator_finished", map[string]interface{}{
		"ideas":     g.NumIdeas,
		"sentinels": g.NumStudents,
	})
	return nil
}

func (g *IdeaGenerator) logEvent(name string, data map[string]interface{}) {
	log.Printf("[IdeaGenerator %d] event=%s %v", g.ID, name, data)
}
