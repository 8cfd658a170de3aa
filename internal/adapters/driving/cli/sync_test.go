package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driving"
)

// mockRunner implements driving.SyncRunner with a canned report.
type mockRunner struct {
	report  *domain.SyncReport
	err     error
	gotOpts driving.RunOptions
	called  bool
}

func (m *mockRunner) Run(_ context.Context, opts driving.RunOptions) (*domain.SyncReport, error) {
	m.called = true
	m.gotOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	for _, outcome := range m.report.Outcomes {
		if opts.Progress != nil {
			opts.Progress(outcome)
		}
	}
	return m.report, nil
}

// withRunner installs a mock runner and resets all sync state after
// the test.
func withRunner(t *testing.T, runner driving.SyncRunner) {
	t.Helper()
	syncRunner = runner
	t.Cleanup(func() {
		syncRunner = nil
		configStore = nil
		syncPath = ""
		syncStartDate = ""
		syncConcurrency = 0
		syncStopAfter = 0
		syncCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
}

func execute(args ...string) (string, string, error) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func reportWith(outcomes ...domain.PeriodOutcome) *domain.SyncReport {
	report := &domain.SyncReport{RunID: "test-run"}
	for _, outcome := range outcomes {
		report.Record(outcome)
	}
	return report
}

// TestSync_PrintsOutcomesAndSummary tests the happy-path rendering.
func TestSync_PrintsOutcomesAndSummary(t *testing.T) {
	jan := domain.Period{Year: 2020, Month: time.January}
	runner := &mockRunner{report: reportWith(
		domain.PeriodOutcome{Period: jan, Kind: domain.OutcomeDownloaded},
		domain.PeriodOutcome{Period: jan.Next(), Kind: domain.OutcomeSkipped},
		domain.PeriodOutcome{Period: jan.Next().Next(), Kind: domain.OutcomeNotPublished},
	)}
	withRunner(t, runner)

	out, errOut, err := execute("sync", "--path", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Saved 202001CSV.csv")
	assert.Contains(t, out, "⊘ Skipping 202002CSV.csv (already exists)")
	assert.Contains(t, out, "⊘ 2020-03 not published yet")
	assert.Contains(t, out, "Summary: 1 downloaded, 1 skipped, 1 not published, 0 failed")
	assert.Empty(t, errOut)
}

// TestSync_FailuresWarnButExitZero tests that a completed run with
// failures warns on stderr yet does not error.
func TestSync_FailuresWarnButExitZero(t *testing.T) {
	may := domain.Period{Year: 2020, Month: time.May}
	runner := &mockRunner{report: reportWith(
		domain.PeriodOutcome{Period: may, Kind: domain.OutcomeFailed, Err: errors.New("status 503")},
	)}
	withRunner(t, runner)

	out, errOut, err := execute("sync", "--path", t.TempDir())
	require.NoError(t, err, "per-period failures must not fail the command")

	assert.Contains(t, out, "✗ 2020-05: status 503")
	assert.Contains(t, out, "0 downloaded")
	assert.Contains(t, errOut, "1 month(s) failed")
}

// TestSync_MalformedStartDateIsUsageError tests the fatal input path.
func TestSync_MalformedStartDateIsUsageError(t *testing.T) {
	runner := &mockRunner{report: reportWith()}
	withRunner(t, runner)

	_, _, err := execute("sync", "--path", t.TempDir(), "--start-date", "2020-13")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
	assert.False(t, runner.called, "no month may be attempted after a usage error")
}

// TestSync_FlagsReachTheRunner tests option plumbing.
func TestSync_FlagsReachTheRunner(t *testing.T) {
	runner := &mockRunner{report: reportWith()}
	withRunner(t, runner)

	_, _, err := execute("sync",
		"--path", t.TempDir(),
		"--start-date", "2021-03",
		"--concurrency", "4",
		"--stop-after", "3",
	)
	require.NoError(t, err)

	assert.Equal(t, domain.Period{Year: 2021, Month: time.March}, runner.gotOpts.Start)
	assert.Equal(t, 4, runner.gotOpts.Concurrency)
	assert.Equal(t, 3, runner.gotOpts.StopAfter)
}

// TestSync_ConfigSuppliesDefaults tests that configured values apply
// when flags are absent.
func TestSync_ConfigSuppliesDefaults(t *testing.T) {
	runner := &mockRunner{report: reportWith()}
	withRunner(t, runner)
	configStore = &fakeConfig{values: map[string]any{
		"sync.start_date": "2021-06",
		"sync.stop_after": int64(3),
	}}

	_, _, err := execute("sync", "--path", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.Period{Year: 2021, Month: time.June}, runner.gotOpts.Start)
	assert.Equal(t, 3, runner.gotOpts.StopAfter)
}

// fakeConfig implements driven.ConfigStore in memory for CLI tests.
type fakeConfig struct {
	values map[string]any
}

func (f *fakeConfig) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f *fakeConfig) GetString(key string) string {
	if s, ok := f.values[key].(string); ok {
		return s
	}
	return ""
}

func (f *fakeConfig) GetInt(key string) int {
	switch v := f.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (f *fakeConfig) Set(key string, value any) error {
	if f.values == nil {
		f.values = make(map[string]any)
	}
	f.values[key] = value
	return nil
}

func (f *fakeConfig) Keys() []string {
	keys := make([]string, 0, len(f.values))
	for key := range f.values {
		keys = append(keys, key)
	}
	return keys
}

func (f *fakeConfig) Path() string { return "/tmp/fake-config.toml" }
