// Package jsonfile implements the required ledger sink: the per-match
// JSON array written to the --output path (spec.md section 6).
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/htamlive/cliquey-dtai-judge/internal/ledger"
)

// Sink accumulates entries in memory and writes the full JSON array on
// Close. A match's ledger is small enough (one entry per turn) that
// buffering it is simpler and cheaper than streaming a JSON array
// incrementally, and it matches spec.md's requirement that the output
// be "an array" rather than newline-delimited records.
type Sink struct {
	path    string
	entries []ledger.Entry
}

// New returns a jsonfile.Sink that will write to path on Close.
func New(path string) *Sink {
	return &Sink{path: path}
}

func (s *Sink) Append(entry ledger.Entry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *Sink) Close() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: marshal ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", s.path, err)
	}
	return nil
}
