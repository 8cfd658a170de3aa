package archive

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/core/ports/driven"
	"github.com/bnoffke/wi-real-estate-transactions-downloader/internal/logger"
)

// Ensure Transcoder implements the interface.
var _ driven.Transcoder = (*Transcoder)(nil)

// Transcoder normalises payload bytes to UTF-8. The DOR publishes
// older months as Windows-1252; newer ones are plain UTF-8 already.
type Transcoder struct{}

// NewTranscoder creates a new transcoder.
func NewTranscoder() *Transcoder {
	return &Transcoder{}
}

// ToUTF8 decodes the payload by trying UTF-8, then Windows-1252, then
// Latin-1, and returns it re-encoded as UTF-8. Valid UTF-8 input
// passes through unchanged. Latin-1 maps every byte, so the chain
// cannot fail on any input.
func (t *Transcoder) ToUTF8(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}

	// Windows-1252 leaves a few bytes unmapped; the decoder turns
	// those into replacement runes, which we treat as a failed guess.
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err == nil && !bytes.ContainsRune(decoded, utf8.RuneError) {
		logger.Debug("Payload transcoded from Windows-1252")
		return decoded, nil
	}

	decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		// Unreachable for any byte sequence; kept for the port contract.
		return nil, fmt.Errorf("transcode: %w", err)
	}
	logger.Debug("Payload transcoded from Latin-1")
	return decoded, nil
}
