package domain

// OutcomeKind classifies what happened to a single period during a run.
type OutcomeKind string

const (
	// OutcomeDownloaded means the data file was fetched, unpacked and
	// written during this run.
	OutcomeDownloaded OutcomeKind = "downloaded"

	// OutcomeSkipped means the data file was already present locally.
	OutcomeSkipped OutcomeKind = "skipped"

	// OutcomeNotPublished means the agency has no data for the period.
	OutcomeNotPublished OutcomeKind = "not_published"

	// OutcomeFailed means the fetch, unpack or write broke. The period
	// will be retried on the next run because no file was left behind.
	OutcomeFailed OutcomeKind = "failed"
)

// PeriodOutcome records what a run did for one period.
type PeriodOutcome struct {
	// Period is the month the outcome applies to.
	Period Period

	// Kind classifies the outcome.
	Kind OutcomeKind

	// Err carries the failure detail for OutcomeFailed, nil otherwise.
	Err error
}

// SyncReport aggregates the outcomes of one sync run.
// It is owned and mutated exclusively by the sync driver; everyone
// else sees it read-only after the run completes.
type SyncReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Start is the first period attempted.
	Start Period

	// End is the last period attempted.
	End Period

	// Outcomes lists one entry per enumerated period, in
	// chronological order.
	Outcomes []PeriodOutcome

	// Downloaded counts periods fetched and written during this run.
	Downloaded int

	// Skipped counts periods already present locally.
	Skipped int

	// NotPublished counts periods the agency has no data for.
	NotPublished int

	// Failed counts periods where the download or unpack broke.
	Failed int
}

// Record appends an outcome and bumps the matching counter.
func (r *SyncReport) Record(outcome PeriodOutcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch outcome.Kind {
	case OutcomeDownloaded:
		r.Downloaded++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeNotPublished:
		r.NotPublished++
	case OutcomeFailed:
		r.Failed++
	}
}

// Attempted returns the number of periods the run covered.
func (r *SyncReport) Attempted() int {
	return len(r.Outcomes)
}
