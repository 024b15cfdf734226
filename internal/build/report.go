package build

import (
	"sync"
	"time"
)

// Report summarizes one build.
type Report struct {
	BuildID string
	Start   time.Time
	End     time.Time

	StageDurations map[StageName]time.Duration
	StageResults   map[StageName]StageResult
	// StageOrder lists stages in the order they ran.
	StageOrder []StageName

	Documents int
	Written   int

	mu       sync.Mutex
	warnings []string
}

func newReport(buildID string, start time.Time) *Report {
	return &Report{
		BuildID:        buildID,
		Start:          start,
		StageDurations: map[StageName]time.Duration{},
		StageResults:   map[StageName]StageResult{},
	}
}

// Warn records a non-fatal problem. It is safe for concurrent use.
func (r *Report) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, msg)
}

// Warnings returns the recorded warnings in order.
func (r *Report) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.warnings...)
}

// Duration is the wall time of the build.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return 0
	}
	return r.End.Sub(r.Start)
}

func (r *Report) recordStage(name StageName, d time.Duration, result StageResult) {
	r.StageDurations[name] = d
	r.StageResults[name] = result
	r.StageOrder = append(r.StageOrder, name)
}
