package revenue

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/logger"
)

const (
	// DefaultBaseURL is the Department of Revenue directory holding the
	// historical sales archives.
	DefaultBaseURL = "https://www.revenue.wi.gov/SLFReportsHistSales"

	// DefaultTimeout bounds a single archive request.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond throttles requests against the DOR
	// server. Two per second is far above what a monthly sync needs
	// and far below anything the server would mind.
	DefaultRequestsPerSecond = 2
)

// Ensure Fetcher implements the interface.
var _ driven.ArchiveFetcher = (*Fetcher)(nil)

// Fetcher retrieves monthly archives from the Department of Revenue
// over HTTP. Months are usually published as <YYYYMM>CSV.zip; a few are
// published as a bare <YYYYMM>CSV.csv instead, so a missing ZIP falls
// back to the direct CSV before the month is declared unpublished.
type Fetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Config holds fetcher configuration.
type Config struct {
	// BaseURL overrides DefaultBaseURL. Mainly for tests.
	BaseURL string

	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing requests. Zero means
	// DefaultRequestsPerSecond; negative disables throttling.
	RequestsPerSecond float64
}

// New creates a fetcher for the given configuration.
func New(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	limit := rate.Limit(cfg.RequestsPerSecond)
	if cfg.RequestsPerSecond == 0 {
		limit = DefaultRequestsPerSecond
	} else if cfg.RequestsPerSecond < 0 {
		limit = rate.Inf
	}

	return &Fetcher{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// ZipURL returns the archive URL for a period.
func (f *Fetcher) ZipURL(period domain.Period) string {
	return fmt.Sprintf("%s/%sCSV.zip", f.baseURL, period)
}

// CSVURL returns the direct-CSV URL for a period.
func (f *Fetcher) CSVURL(period domain.Period) string {
	return fmt.Sprintf("%s/%sCSV.csv", f.baseURL, period)
}

// Fetch makes a single retrieval attempt for the period.
// The outcome is three-way: the archive, domain.ErrNotPublished when
// neither the ZIP nor the bare CSV exists, or *domain.TransferError
// for anything else. Fetch never retries.
func (f *Fetcher) Fetch(ctx context.Context, period domain.Period) (*domain.Archive, error) {
	data, status, err := f.get(ctx, f.ZipURL(period))
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		// Fall through to the direct CSV below.
	case status >= 200 && status < 300:
		return &domain.Archive{Period: period, Format: domain.FormatZip, Data: data}, nil
	default:
		return nil, &domain.TransferError{URL: f.ZipURL(period), StatusCode: status}
	}

	logger.Debug("No ZIP for %s, trying direct CSV", period)

	data, status, err = f.get(ctx, f.CSVURL(period))
	if err != nil {
		return nil, err
	}

	switch {
	case status == http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", period.Display(), domain.ErrNotPublished)
	case status >= 200 && status < 300:
		return &domain.Archive{Period: period, Format: domain.FormatCSV, Data: data}, nil
	default:
		return nil, &domain.TransferError{URL: f.CSVURL(period), StatusCode: status}
	}
}

// get performs one throttled GET and returns the body for successful
// responses. Non-2xx bodies are drained and discarded so the
// connection can be reused.
func (f *Fetcher) get(ctx context.Context, url string) ([]byte, int, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, 0, &domain.TransferError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, &domain.TransferError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, &domain.TransferError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, &domain.TransferError{URL: url, Err: err}
	}

	return body, resp.StatusCode, nil
}
