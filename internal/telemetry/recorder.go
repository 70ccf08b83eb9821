// Package telemetry records the game event stream as CSV for later analysis.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/ultrasnake/internal/core"
)

// EventRecord is one row of the events CSV.
type EventRecord struct {
	Run    int    `csv:"run"`
	AtMs   int64  `csv:"at_ms"`
	Event  string `csv:"event"`
	Detail string `csv:"detail"`
	Score  int    `csv:"score"`
	Total  int    `csv:"total"`
}

// Recorder appends events to a CSV stream. A nil *Recorder is valid and
// records nothing, so callers need no enabled checks.
type Recorder struct {
	out           io.Writer
	closer        io.Closer
	headerWritten bool
	run           int
}

// NewRecorder creates path (and its directory) and records into it.
// Returns nil if path is empty (recording disabled).
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	r := NewRecorderTo(f)
	r.closer = f
	return r, nil
}

// NewRecorderTo records into an existing writer.
func NewRecorderTo(w io.Writer) *Recorder {
	return &Recorder{out: w, run: 1}
}

// NextRun numbers subsequent rows as a new run.
func (r *Recorder) NextRun() {
	if r == nil {
		return
	}
	r.run++
}

// Record writes one row per event, stamped with the simulation time and
// the state after the step that produced them.
func (r *Recorder) Record(at time.Duration, state core.GameState, events []core.Event) error {
	if r == nil || len(events) == 0 {
		return nil
	}

	records := make([]EventRecord, len(events))
	for i, e := range events {
		records[i] = EventRecord{
			Run:    r.run,
			AtMs:   at.Milliseconds(),
			Event:  e.Name(),
			Detail: fmt.Sprintf("%+v", e),
			Score:  state.Score,
			Total:  state.Total,
		}
	}

	if !r.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, r.out); err != nil {
			return fmt.Errorf("telemetry: writing events: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.out); err != nil {
		return fmt.Errorf("telemetry: writing events: %w", err)
	}
	return nil
}

// Close closes the underlying file, if the recorder owns one.
func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// ReadEvents parses a CSV produced by a Recorder.
func ReadEvents(in io.Reader) ([]EventRecord, error) {
	var records []EventRecord
	if err := gocsv.Unmarshal(in, &records); err != nil {
		return nil, fmt.Errorf("telemetry: reading events: %w", err)
	}
	return records, nil
}
