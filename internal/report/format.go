// Package report renders the outcome of a hackathon run: the build log and
// the four global checksums.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dyluth/hackathon/internal/hackathon"
	"github.com/dyluth/hackathon/internal/ledger"
)

// Output formats
const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// Checksums is the machine-readable form of a run's checksums.
type Checksums struct {
	IdeaGenerator     string `json:"idea_generator"`
	StudentIdea       string `json:"student_idea"`
	PackageDownloader string `json:"package_downloader"`
	StudentPackage    string `json:"student_package"`
}

// ChecksumsOf extracts the hex checksums from a result.
func ChecksumsOf(r *hackathon.Result) Checksums {
	return Checksums{
		IdeaGenerator:     r.IdeaProduced.String(),
		StudentIdea:       r.StudentIdea.String(),
		PackageDownloader: r.PackageProduced.String(),
		StudentPackage:    r.StudentPackage.String(),
	}
}

// WriteRecords writes the build log in the requested format.
func WriteRecords(w io.Writer, records []ledger.BuildRecord, format string) error {
	switch format {
	case FormatText:
		return writeRecordsText(w, records)
	case FormatJSONL:
		return writeRecordsJSONL(w, records)
	default:
		return fmt.Errorf("unknown output format: %s (must be '%s' or '%s')", format, FormatText, FormatJSONL)
	}
}

// writeRecordsText writes one blank-line separated block per build.
func writeRecordsText(w io.Writer, records []ledger.BuildRecord) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("failed to write build log: %w", err)
		}
		for _, line := range rec.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return fmt.Errorf("failed to write build log: %w", err)
			}
		}
	}
	return nil
}

// writeRecordsJSONL writes each record as a single JSON object on its own line.
func writeRecordsJSONL(w io.Writer, records []ledger.BuildRecord) error {
	enc := json.NewEncoder(w)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// WriteChecksums writes the four global checksums in the requested format.
func WriteChecksums(w io.Writer, r *hackathon.Result, format string) error {
	sums := ChecksumsOf(r)

	switch format {
	case FormatText:
		_, err := fmt.Fprintf(w, "\nGlobal checksums:\nIdea Generator: %s\nStudent Idea: %s\nPackage Downloader: %s\nStudent Package: %s\n",
			sums.IdeaGenerator, sums.StudentIdea, sums.PackageDownloader, sums.StudentPackage)
		if err != nil {
			return fmt.Errorf("failed to write checksums: %w", err)
		}
		return nil

	case FormatJSONL:
		data, err := json.Marshal(sums)
		if err != nil {
			return fmt.Errorf("failed to marshal checksums: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown output format: %s (must be '%s' or '%s')", format, FormatText, FormatJSONL)
	}
}
