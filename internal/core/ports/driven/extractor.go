package driven

// ArchiveExtractor unpacks the single data file from an archive.
type ArchiveExtractor interface {
	// Extract returns the bytes of the one CSV entry the archive is
	// expected to contain, unchanged. It fails with
	// domain.ErrBadArchive when the archive cannot be read,
	// domain.ErrNoPayload when no CSV entry exists, and
	// domain.ErrAmbiguousPayload when more than one does. An ambiguous
	// archive is an error, never a guess.
	Extract(data []byte) ([]byte, error)
}

// Transcoder normalises payload bytes to UTF-8.
type Transcoder interface {
	// ToUTF8 decodes the payload by trying a fixed sequence of likely
	// encodings and re-encodes it as UTF-8. Input already valid as
	// UTF-8 passes through unchanged.
	ToUTF8(data []byte) ([]byte, error)
}
