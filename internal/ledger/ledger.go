// Package ledger holds the student-side record of a run: the idea and package
// checksums of everything built so far and the append-only build log.
package ledger

import (
	"fmt"
	"sync"

	"github.com/dyluth/hackathon/pkg/checksum"
	"github.com/dyluth/hackathon/pkg/event"
)

// BuildRecord describes one successful build.
type BuildRecord struct {
	StudentID       int      `json:"student_id"`
	Idea            string   `json:"idea"`
	Packages        []string `json:"packages"`         // consumed packages, oldest first
	IdeaChecksum    string   `json:"idea_checksum"`    // student idea checksum right after this build
	PackageChecksum string   `json:"package_checksum"` // student package checksum right after this build
}

// Lines renders the record as human-readable log lines.
func (r BuildRecord) Lines() []string {
	lines := make([]string, 0, 3+len(r.Packages))
	lines = append(lines,
		fmt.Sprintf("Student %d built %s using %d packages", r.StudentID, r.Idea, len(r.Packages)),
		fmt.Sprintf("Idea checksum: %s", r.IdeaChecksum),
		fmt.Sprintf("Package checksum: %s", r.PackageChecksum),
	)
	for _, p := range r.Packages {
		lines = append(lines, "> "+p)
	}
	return lines
}

// Ledger is shared by every student of a run. Both checksums and the log are
// guarded by one lock so a reader never sees one checksum updated without the
// other.
type Ledger struct {
	mu       sync.Mutex
	ideas    checksum.Checksum
	packages checksum.Checksum
	records  []BuildRecord
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// RecordBuild folds the idea and every consumed package into the student
// checksums and appends a build record, all in one critical section.
func (l *Ledger) RecordBuild(studentID int, idea event.Idea, pkgs []event.Package) BuildRecord {
	ideaSum := checksum.FromString(idea.Name)
	names := make([]string, len(pkgs))
	pkgSums := make([]checksum.Checksum, len(pkgs))
	for i, p := range pkgs {
		names[i] = p.Name
		pkgSums[i] = checksum.FromString(p.Name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.ideas = l.ideas.Combine(ideaSum)
	for _, s := range pkgSums {
		l.packages = l.packages.Combine(s)
	}

	rec := BuildRecord{
		StudentID:       studentID,
		Idea:            idea.Name,
		Packages:        names,
		IdeaChecksum:    l.ideas.String(),
		PackageChecksum: l.packages.String(),
	}
	l.records = append(l.records, rec)
	return rec
}

// IdeaChecksum returns the checksum of every idea built so far.
func (l *Ledger) IdeaChecksum() checksum.Checksum {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ideas
}

// PackageChecksum returns the checksum of every package consumed so far.
func (l *Ledger) PackageChecksum() checksum.Checksum {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.packages
}

// Records returns a copy of the build log in append order.
func (l *Ledger) Records() []BuildRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]BuildRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of builds recorded.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}
