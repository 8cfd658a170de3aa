package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent expected failure modes of a sync run.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidPeriod indicates a malformed or out-of-range year-month.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrNotPublished indicates the agency has not published data for a
	// period yet. Expected for recent months; never fatal.
	ErrNotPublished = errors.New("not published")

	// ErrBadArchive indicates the downloaded archive could not be read.
	ErrBadArchive = errors.New("malformed archive")

	// ErrNoPayload indicates the archive contains no CSV entry.
	ErrNoPayload = errors.New("archive contains no data file")

	// ErrAmbiguousPayload indicates the archive contains more than one
	// CSV entry. The payload is never guessed from multiple candidates.
	ErrAmbiguousPayload = errors.New("archive contains multiple data files")
)

// TransferError indicates the remote fetch failed for a reason other
// than the data not being published: a timeout, a refused connection,
// or an unexpected status code.
type TransferError struct {
	// URL is the address the fetch was attempted against.
	URL string

	// StatusCode is the HTTP status received, or 0 when the request
	// never completed.
	StatusCode int

	// Err is the underlying transport error, if any.
	Err error
}

func (e *TransferError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transfer failed for %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("transfer failed for %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
