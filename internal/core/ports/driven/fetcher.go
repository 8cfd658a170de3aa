package driven

import (
	"context"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
)

// ArchiveFetcher retrieves the published archive for one period.
type ArchiveFetcher interface {
	// Fetch makes a single retrieval attempt for the period and returns
	// the raw archive. It distinguishes three outcomes:
	//
	//   - success: the archive with its format (zip or bare csv)
	//   - domain.ErrNotPublished: the agency has no data for the period
	//   - *domain.TransferError: the request itself broke
	//
	// Fetch never retries; the caller decides whether a failed period
	// is worth another run.
	Fetch(ctx context.Context, period domain.Period) (*domain.Archive, error)
}
