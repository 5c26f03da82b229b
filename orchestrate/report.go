// Package orchestrate drives the full (source x hour) cross-product: it
// partitions sources into worker lanes, walks the time grid per source, and
// hands completed buffers to the output writer. Failures isolate to a single
// source; the final Report is the run's only user-visible failure surface.
package orchestrate

import (
	"stagehand/core"
)

// SourceState classifies one source's outcome.
type SourceState string

const (
	// StateSuccess means the full day range generated and the file was
	// written.
	StateSuccess SourceState = "success"
	// StatePartial means a run-level shutdown interrupted the source after
	// it had produced output; the hours completed were written.
	StatePartial SourceState = "partial"
	// StateFailed means the source errored, exceeded its deadline, or was
	// interrupted before producing anything. No file is written for it.
	StateFailed SourceState = "failed"
)

// SourceStatus is one source's line in the final report.
type SourceStatus struct {
	State      SourceState `json:"state"`
	EventCount int         `json:"event_count"`
	File       string      `json:"file,omitempty"`
	Err        string      `json:"error,omitempty"`
}

// Report summarizes a run per source.
type Report struct {
	PerSource map[core.SourceID]SourceStatus `json:"per_source"`
}

// Failed reports whether any source ended in a non-success state.
func (r *Report) Failed() bool {
	for _, st := range r.PerSource {
		if st.State != StateSuccess {
			return true
		}
	}
	return false
}

// TotalEvents sums event counts across all written sources.
func (r *Report) TotalEvents() int {
	total := 0
	for _, st := range r.PerSource {
		total += st.EventCount
	}
	return total
}
