package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/archive"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/config/file"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/localstore"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/adapters/driven/revenue"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driving"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/services"
)

// defaultStartDate is the first month the tool reaches back to when
// neither the flag nor the config file says otherwise.
const defaultStartDate = "2020-01"

var (
	syncPath        string
	syncStartDate   string
	syncConcurrency int
	syncStopAfter   int
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the months missing from the local directory",
	Long: `Enumerates every month from the start date through the current month,
skips the ones whose data file already exists locally, downloads and
unpacks the rest, and prints one line per month plus a final summary.

A month the Department of Revenue has not published yet is reported,
not treated as an error. A month whose download breaks is recorded and
retried on the next run; it never aborts the rest of the run, and the
exit code stays zero once all months have been attempted.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVarP(&syncPath, "path", "p", "", "directory to save data files (default ~/data/wi-sales)")
	syncCmd.Flags().StringVarP(&syncStartDate, "start-date", "s", "", "first month to sync, YYYY-MM (default "+defaultStartDate+")")
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 0, "months fetched in flight (default 1, sequential)")
	syncCmd.Flags().IntVar(&syncStopAfter, "stop-after", 0, "stop after this many consecutive unpublished months (0 = never)")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	start, err := resolveStart()
	if err != nil {
		return err
	}

	dir, err := resolvePath()
	if err != nil {
		return err
	}

	concurrency := syncConcurrency
	if !cmd.Flags().Changed("concurrency") {
		concurrency = configInt(file.KeyConcurrency)
	}

	stopAfter := syncStopAfter
	if !cmd.Flags().Changed("stop-after") {
		stopAfter = configInt(file.KeyStopAfter)
	}

	runner := syncRunner
	if runner == nil {
		runner, err = buildRunner(dir)
		if err != nil {
			return err
		}
	}

	// An interrupt finishes the in-flight month (or abandons it with
	// nothing renamed into place) and stops before the next one.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Target directory: %s\n", dir)
	cmd.Printf("Starting from: %s\n", start.Display())
	cmd.Println()

	report, err := runner.Run(ctx, driving.RunOptions{
		Start:       start,
		Concurrency: concurrency,
		StopAfter:   stopAfter,
		Progress: func(outcome domain.PeriodOutcome) {
			printOutcome(cmd, outcome)
		},
	})
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Printf("Summary: %d downloaded, %d skipped, %d not published, %d failed\n",
		report.Downloaded, report.Skipped, report.NotPublished, report.Failed)

	// The run completed, so the exit code stays zero; failures are
	// surfaced loudly and will be retried by the next run.
	if report.Failed > 0 {
		cmd.PrintErrf("warning: %d month(s) failed to download; rerun to retry\n", report.Failed)
	}

	return nil
}

// resolveStart picks the start month: flag, then config, then default.
// A malformed date is a usage error and aborts before any month is
// attempted.
func resolveStart() (domain.Period, error) {
	raw := syncStartDate
	if raw == "" {
		raw = configString(file.KeyStartDate)
	}
	if raw == "" {
		raw = defaultStartDate
	}

	start, err := domain.ParsePeriod(raw)
	if err != nil {
		return domain.Period{}, fmt.Errorf("start date %q: %w", raw, err)
	}
	return start, nil
}

// resolvePath picks the target directory: flag, then config, then
// ~/data/wi-sales.
func resolvePath() (string, error) {
	if syncPath != "" {
		return syncPath, nil
	}
	if dir := configString(file.KeyPath); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, "data", "wi-sales"), nil
}

// buildRunner wires the real adapters into a sync service. An
// unusable target directory is a usage error.
func buildRunner(dir string) (driving.SyncRunner, error) {
	store, err := localstore.New(dir)
	if err != nil {
		return nil, fmt.Errorf("target path %s: %w", dir, err)
	}

	fetcher := revenue.New(revenue.Config{
		BaseURL:           configString(file.KeyBaseURL),
		Timeout:           time.Duration(configInt(file.KeyTimeoutSeconds)) * time.Second,
		RequestsPerSecond: float64(configInt(file.KeyRequestsPerSecond)),
	})

	return services.NewSyncService(fetcher, archive.NewExtractor(), archive.NewTranscoder(), store), nil
}

// printOutcome renders one structured outcome as a console line.
func printOutcome(cmd *cobra.Command, outcome domain.PeriodOutcome) {
	name := outcome.Period.String() + "CSV.csv"

	switch outcome.Kind {
	case domain.OutcomeDownloaded:
		cmd.Printf("✓ Saved %s\n", name)
	case domain.OutcomeSkipped:
		cmd.Printf("⊘ Skipping %s (already exists)\n", name)
	case domain.OutcomeNotPublished:
		cmd.Printf("⊘ %s not published yet\n", outcome.Period.Display())
	case domain.OutcomeFailed:
		cmd.Printf("✗ %s: %v\n", outcome.Period.Display(), outcome.Err)
	}
}
