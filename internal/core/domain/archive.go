package domain

// ArchiveFormat identifies how a fetched payload is packaged.
type ArchiveFormat string

const (
	// FormatZip is the usual packaging: a ZIP containing one CSV.
	FormatZip ArchiveFormat = "zip"

	// FormatCSV is a bare CSV published without a wrapping archive.
	// Some months are available only in this form.
	FormatCSV ArchiveFormat = "csv"
)

// Archive holds the raw bytes fetched for one period.
// It is transient: fetched, unpacked and discarded within a single
// driver step, never persisted.
type Archive struct {
	// Period is the month the archive covers.
	Period Period

	// Format describes the packaging of Data.
	Format ArchiveFormat

	// Data is the raw response body.
	Data []byte
}
