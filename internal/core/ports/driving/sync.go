package driving

import (
	"context"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
)

// SyncRunner drives one synchronisation run.
type SyncRunner interface {
	// Run enumerates every month from opts.Start through the current
	// month, downloads the ones missing locally and returns the
	// aggregate report. Per-period failures are recorded in the report
	// and never abort the run; a non-nil error means the run could not
	// be attempted at all.
	Run(ctx context.Context, opts RunOptions) (*domain.SyncReport, error)
}

// RunOptions configures a sync run.
type RunOptions struct {
	// Start is the first period to consider.
	Start domain.Period

	// Concurrency is the number of periods fetched in flight.
	// 1 (or less) means strictly sequential processing, which is the
	// correctness baseline.
	Concurrency int

	// StopAfter stops the run early once this many consecutive
	// unpublished months are seen. 0 disables the cutoff and the run
	// enumerates through the current month. Only honoured when
	// processing sequentially.
	StopAfter int

	// Progress, when non-nil, is invoked with each period outcome as
	// it is recorded, in chronological order. Presentation lives in
	// the caller; the core only emits structured outcomes.
	Progress func(domain.PeriodOutcome)
}
