package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/domain"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.ArchiveExtractor = (*Extractor)(nil)

// Extractor unpacks the single CSV entry from a downloaded ZIP.
type Extractor struct{}

// NewExtractor creates a new ZIP extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the bytes of the archive's one CSV entry, unchanged.
// An archive with no CSV entry fails with domain.ErrNoPayload, one
// with several fails with domain.ErrAmbiguousPayload. The payload is
// never guessed from multiple candidates.
func (e *Extractor) Extract(data []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadArchive, err)
	}

	var payload *zip.File
	for _, file := range reader.File {
		if file.FileInfo().IsDir() || !isCSV(file.Name) {
			continue
		}
		if payload != nil {
			return nil, fmt.Errorf("%w: %q and %q", domain.ErrAmbiguousPayload, payload.Name, file.Name)
		}
		payload = file
	}

	if payload == nil {
		return nil, domain.ErrNoPayload
	}

	rc, err := payload.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", domain.ErrBadArchive, payload.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: read %q: %v", domain.ErrBadArchive, payload.Name, err)
	}

	return content, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}
