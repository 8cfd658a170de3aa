package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driving"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/logger"
)

// Ensure SyncService implements the interface.
var _ driving.SyncRunner = (*SyncService)(nil)

// SyncService drives a synchronisation run: enumerate the months from
// the start date through the current month, skip the ones already on
// disk, fetch and unpack the rest, and tally the outcomes.
//
// Periods are independent of each other; ordering exists only so the
// report reads chronologically. All report mutation happens on the
// calling goroutine, even when fetches run concurrently.
type SyncService struct {
	fetcher    driven.ArchiveFetcher
	extractor  driven.ArchiveExtractor
	transcoder driven.Transcoder
	store      driven.FileStore

	// now is the clock used to find the end of the enumeration.
	// Overridden in tests.
	now func() time.Time
}

// NewSyncService creates a new sync driver.
func NewSyncService(
	fetcher driven.ArchiveFetcher,
	extractor driven.ArchiveExtractor,
	transcoder driven.Transcoder,
	store driven.FileStore,
) *SyncService {
	return &SyncService{
		fetcher:    fetcher,
		extractor:  extractor,
		transcoder: transcoder,
		store:      store,
		now:        time.Now,
	}
}

// Run executes one synchronisation run. Per-period failures become
// report entries; the returned error is non-nil only when the run
// could not be attempted at all (invalid start period).
func (s *SyncService) Run(ctx context.Context, opts driving.RunOptions) (*domain.SyncReport, error) {
	if err := opts.Start.Validate(); err != nil {
		return nil, fmt.Errorf("start period: %w", err)
	}

	end := domain.PeriodOf(s.now())
	periods := domain.PeriodsThrough(opts.Start, end)

	report := &domain.SyncReport{
		RunID: uuid.New().String(),
		Start: opts.Start,
		End:   end,
	}

	if len(periods) == 0 {
		logger.Info("Nothing to sync: start %s is after the current month", opts.Start.Display())
		return report, nil
	}

	logger.Info("Run %s: %d months, %s through %s",
		report.RunID, len(periods), opts.Start.Display(), end.Display())

	// The consecutive-miss cutoff needs chronological knowledge, so it
	// forces sequential processing.
	if opts.Concurrency > 1 && opts.StopAfter <= 0 {
		s.runConcurrent(ctx, periods, opts, report)
	} else {
		s.runSequential(ctx, periods, opts, report)
	}

	logger.Info("Run %s complete: %d downloaded, %d skipped, %d not published, %d failed",
		report.RunID, report.Downloaded, report.Skipped, report.NotPublished, report.Failed)

	return report, nil
}

// runSequential processes periods strictly one at a time, oldest
// first. This is the correctness baseline.
func (s *SyncService) runSequential(
	ctx context.Context,
	periods []domain.Period,
	opts driving.RunOptions,
	report *domain.SyncReport,
) {
	misses := 0
	for _, period := range periods {
		// An interrupt stops before the next period begins; the
		// in-flight period either completed its rename or left nothing.
		if ctx.Err() != nil {
			logger.Warn("Run interrupted before %s", period.Display())
			return
		}

		outcome := s.syncPeriod(ctx, period)
		report.Record(outcome)
		if opts.Progress != nil {
			opts.Progress(outcome)
		}

		if outcome.Kind == domain.OutcomeNotPublished {
			misses++
			if opts.StopAfter > 0 && misses >= opts.StopAfter {
				logger.Info("Stopping after %d consecutive unpublished months", misses)
				return
			}
		} else {
			misses = 0
		}
	}
}

// runConcurrent processes up to opts.Concurrency periods in flight.
// Outcomes are collected per index and recorded in chronological order
// afterwards, so the report and the progress stream stay deterministic
// and the report remains single-writer.
func (s *SyncService) runConcurrent(
	ctx context.Context,
	periods []domain.Period,
	opts driving.RunOptions,
	report *domain.SyncReport,
) {
	outcomes := make([]domain.PeriodOutcome, len(periods))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)

	for i, period := range periods {
		i, period := i, period
		group.Go(func() error {
			outcomes[i] = s.syncPeriod(groupCtx, period)
			return nil
		})
	}

	// Workers never return errors; failures are outcomes.
	_ = group.Wait()

	for _, outcome := range outcomes {
		report.Record(outcome)
		if opts.Progress != nil {
			opts.Progress(outcome)
		}
	}
}

// syncPeriod performs the presence check, fetch, unpack and write for
// a single period and reduces whatever happened to one outcome.
func (s *SyncService) syncPeriod(ctx context.Context, period domain.Period) domain.PeriodOutcome {
	exists, err := s.store.Exists(period)
	if err != nil {
		return failed(period, fmt.Errorf("presence check: %w", err))
	}
	if exists {
		logger.Debug("%s already present, skipping", period)
		return domain.PeriodOutcome{Period: period, Kind: domain.OutcomeSkipped}
	}

	archive, err := s.fetcher.Fetch(ctx, period)
	if errors.Is(err, domain.ErrNotPublished) {
		logger.Debug("%s not published yet", period)
		return domain.PeriodOutcome{Period: period, Kind: domain.OutcomeNotPublished}
	}
	if err != nil {
		logger.Warn("Fetch %s: %v", period, err)
		return failed(period, err)
	}

	payload := archive.Data
	if archive.Format == domain.FormatZip {
		payload, err = s.extractor.Extract(archive.Data)
		if err != nil {
			logger.Warn("Unpack %s: %v", period, err)
			return failed(period, fmt.Errorf("unpack: %w", err))
		}
	}

	payload, err = s.transcoder.ToUTF8(payload)
	if err != nil {
		return failed(period, fmt.Errorf("transcode: %w", err))
	}

	if err := s.store.Write(period, payload); err != nil {
		return failed(period, fmt.Errorf("write: %w", err))
	}

	logger.Debug("%s written to %s", period, s.store.Path(period))
	return domain.PeriodOutcome{Period: period, Kind: domain.OutcomeDownloaded}
}

func failed(period domain.Period, err error) domain.PeriodOutcome {
	return domain.PeriodOutcome{Period: period, Kind: domain.OutcomeFailed, Err: err}
}
