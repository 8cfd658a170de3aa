package driven

import "github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"

// FileStore persists the synced data files. The directory of data
// files IS the sync state: a period is synced exactly when its file
// exists, regardless of content.
type FileStore interface {
	// Exists reports whether the canonical data file for the period is
	// already present. Pure check, no side effects; byte content is
	// deliberately not inspected.
	Exists(period domain.Period) (bool, error)

	// Write persists the data file for the period atomically: the
	// bytes go to a temporary path first and are renamed into place,
	// so a crash mid-write never leaves a partial file under the
	// canonical name.
	Write(period domain.Period, data []byte) error

	// Path returns the canonical path the period's data file lives at.
	Path(period domain.Period) string
}
