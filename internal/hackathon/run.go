package hackathon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/dyluth/hackathon/internal/catalog"
	"github.com/dyluth/hackathon/internal/config"
	"github.com/dyluth/hackathon/internal/ledger"
	"github.com/dyluth/hackathon/internal/producer"
	"github.com/dyluth/hackathon/internal/queue"
	"github.com/dyluth/hackathon/internal/student"
	"github.com/dyluth/hackathon/pkg/checksum"
)

// ErrChecksumMismatch is returned by Result.Verify when a produced checksum
// and its student-side counterpart disagree.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Result is everything a finished run reports.
type Result struct {
	IdeaProduced    checksum.Checksum
	StudentIdea     checksum.Checksum
	PackageProduced checksum.Checksum
	StudentPackage  checksum.Checksum
	Records         []ledger.BuildRecord
}

// Verify checks that students built exactly what the producers produced.
func (r *Result) Verify() error {
	var errs []error
	if !r.IdeaProduced.Equal(r.StudentIdea) {
		errs = append(errs, fmt.Errorf("%w: ideas produced %s, students built %s",
			ErrChecksumMismatch, r.IdeaProduced, r.StudentIdea))
	}
	if !r.PackageProduced.Equal(r.StudentPackage) {
		errs = append(errs, fmt.Errorf("%w: packages produced %s, students consumed %s",
			ErrChecksumMismatch, r.PackageProduced, r.StudentPackage))
	}
	return errors.Join(errs...)
}

// Run executes one hackathon on q and blocks until every goroutine has
// returned. There is no timeout: a run that cannot drain waits until ctx is
// cancelled. The first goroutine error cancels the rest of the run and is
// returned.
func Run(ctx context.Context, cfg *config.RunConfig, lists *catalog.Lists, q queue.Queue) (*Result, error) {
	if err := cfg.ValidateCounts(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		ideaSum    checksum.Accumulator
		packageSum checksum.Accumulator
		book       = ledger.New()
		wg         sync.WaitGroup
		errOnce    sync.Once
		firstErr   error
	)

	spawn := func(run func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := run(runCtx); err != nil {
				errOnce.Do(func() {
					firstErr = err
					cancel()
				})
			}
		}()
	}

	log.Printf("[Coordinator] event=run_started ideas=%d idea_producers=%d packages=%d package_producers=%d students=%d",
		cfg.Ideas, cfg.IdeaProducers, cfg.Packages, cfg.PackageProducers, cfg.Students)

	for i := 0; i < cfg.Students; i++ {
		spawn(student.New(i, q, book).Run)
	}

	start := 0
	for i := 0; i < cfg.PackageProducers; i++ {
		d := &producer.PackageDownloader{
			ID:          i,
			StartIndex:  start,
			NumPackages: Split(i, cfg.Packages, cfg.PackageProducers),
			Catalog:     lists.Packages,
		}
		start += d.NumPackages
		spawn(func(ctx context.Context) error { return d.Run(ctx, q, &packageSum) })
	}

	start = 0
	for i := 0; i < cfg.IdeaProducers; i++ {
		g := &producer.IdeaGenerator{
			ID:          i,
			StartIndex:  start,
			NumIdeas:    Split(i, cfg.Ideas, cfg.IdeaProducers),
			NumStudents: Split(i, cfg.Students, cfg.IdeaProducers),
			NumPackages: Split(i, cfg.Packages, cfg.IdeaProducers),
			Products:    lists.Products,
			Customers:   lists.Customers,
		}
		start += g.NumIdeas
		spawn(func(ctx context.Context) error { return g.Run(ctx, q, &ideaSum) })
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	result := &Result{
		IdeaProduced:    ideaSum.Sum(),
		StudentIdea:     book.IdeaChecksum(),
		PackageProduced: packageSum.Sum(),
		StudentPackage:  book.PackageChecksum(),
		Records:         book.Records(),
	}

	log.Printf("[Coordinator] event=run_finished builds=%d", len(result.Records))
	return result, nil
}
