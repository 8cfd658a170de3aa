package localstore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.FileStore = (*Store)(nil)

// Store keeps the synced data files in a single directory, one file
// per period named <YYYYMM>CSV.csv. The directory is the only
// persisted state; there is no manifest or index.
type Store struct {
	dir string
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create target directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the target directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the canonical path for a period's data file.
func (s *Store) Path(period domain.Period) string {
	return filepath.Join(s.dir, period.String()+"CSV.csv")
}

// Exists reports whether the period's data file is present. Content
// is deliberately not inspected; a zero-byte file counts as present.
func (s *Store) Exists(period domain.Period) (bool, error) {
	_, err := os.Stat(s.Path(period))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Write persists the data file atomically: bytes land in a hidden
// temp file in the same directory, which is then renamed into place.
// A crash mid-write leaves at worst an orphaned temp file, never a
// partial file under the canonical name.
func (s *Store) Write(period domain.Period, data []byte) error {
	tmp := filepath.Join(s.dir, fmt.Sprintf(".%sCSV.csv.%s.tmp", period, uuid.New().String()))

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmp, s.Path(period)); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename into place: %w", err)
	}

	return nil
}
