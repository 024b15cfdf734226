package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docgallery/internal/config"
)

// Service is the canonical interface for executing documentation builds.
// The CLI build command and the watch loop are thin wrappers over it.
type Service interface {
	// Run executes the complete pipeline and returns its Result. The Result
	// is non-nil even when an error is returned.
	Run(ctx context.Context, req Request) (*Result, error)
}

// Request contains all inputs required to execute a documentation build.
type Request struct {
	// Config is the loaded configuration for this build.
	Config *config.Config

	// Options provides optional build behavior modifiers.
	Options Options
}

// Options overrides configuration values for a single build.
type Options struct {
	// Workers overrides build.workers when positive.
	Workers int

	// Format overrides output.format when set.
	Format config.OutputFormat
}

// Result contains the outcome of a build execution.
type Result struct {
	// Status indicates overall build outcome.
	Status Status

	// Report holds stage timings and warnings.
	Report *Report

	// OutputPath is the output directory.
	OutputPath string

	// Documents is the number of source documents read.
	Documents int

	// Duration is the total build execution time.
	Duration time.Duration

	StartTime time.Time
	EndTime   time.Time
}

// Status represents the outcome of a build execution.
type Status string

const (
	// StatusSuccess indicates the build completed successfully.
	StatusSuccess Status = "success"

	// StatusFailed indicates the build encountered an error.
	StatusFailed Status = "failed"

	// StatusCanceled indicates the build was canceled.
	StatusCanceled Status = "canceled"
)

// IsTerminal returns true if the status represents a final state.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusCanceled
}

// IsSuccess returns true if the build completed successfully.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}
