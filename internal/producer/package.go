package producer

import (
	"context"
	"fmt"
	"log"

	"github.com/dyluth/hackathon/internal/queue"
	"github.com/dyluth/hackathon/pkg/checksum"
	"github.com/dyluth/hackathon/pkg/event"
)

// PackageDownloader emits packages by walking a fixed catalog cyclically from
// StartIndex. It never emits sentinels; termination is driven from the idea
// side.
type PackageDownloader struct {
	ID          int
	StartIndex  int
	NumPackages int
	Catalog     []string
}

// PackageName returns the catalog entry for global package index i.
func PackageName(catalog []string, i int) string {
	return catalog[i%len(catalog)]
}

// Run sends NumPackages packages, folding each name into produced first.
func (d *PackageDownloader) Run(ctx context.Context, q queue.Queue, produced *checksum.Accumulator) error {
	if len(d.Catalog) == 0 {
		return fmt.Errorf("package downloader %d: catalog cannot be empty", d.ID)
	}

	log.Printf("[PackageDownloader %d] event=downloader_started start_index=%d packages=%d", d.ID, d.StartIndex, d.NumPackages)

	for i := 0; i < d.NumPackages; i++ {
		pkg := event.Package{Name: PackageName(d.Catalog, d.StartIndex+i)}

		produced.Add(pkg.Name)

		if err := q.Send(ctx, event.PackageReady(pkg)); err != nil {
			return fmt.Errorf("package downloader %d: failed to send package %q: %w", d.ID, pkg.Name, err)
		}
	}

	log.Printf("[PackageDownloader %d] event=downloader_finished packages=%d", d.ID, d.NumPackages)
	return nil
}
