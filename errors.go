package scanline

import "errors"

// The three decode failure kinds. They are returned as values, compared
// with errors.Is, and never downgraded from one kind to another: callers
// use the distinction to decide between "rescan this" (Checksum or Format
// means a barcode-shaped region was found) and "no barcode here".
var (
	// ErrNotFound means no guard pattern or digit match was located within
	// tolerance. Expected on rows that simply contain no barcode.
	ErrNotFound = errors.New("barcode not found")

	// ErrFormat means a barcode-shaped region was found but its content
	// violates structural expectations (wrong digit count, non-digit where
	// a digit was required).
	ErrFormat = errors.New("format error")

	// ErrChecksum means digits were fully decoded and structurally valid
	// but fail the weighted mod-10 check.
	ErrChecksum = errors.New("checksum error")
)
