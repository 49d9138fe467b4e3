// Package scanline decodes one-dimensional UPC/EAN-family barcodes from
// scanned pixel rows.
package scanline

import (
	"fmt"
	"strings"
	"time"
)

// Format identifies a barcode symbology.
type Format int

const (
	FormatEAN13 Format = iota
	FormatEAN8
	FormatUPCA
	FormatUPCE
)

// String returns the conventional name of the format.
func (f Format) String() string {
	switch f {
	case FormatEAN13:
		return "EAN_13"
	case FormatEAN8:
		return "EAN_8"
	case FormatUPCA:
		return "UPC_A"
	case FormatUPCE:
		return "UPC_E"
	default:
		return "UNKNOWN"
	}
}

// ParseFormat resolves a format name, accepting both EAN_13 and ean13
// spellings.
func ParseFormat(name string) (Format, error) {
	switch strings.ToUpper(strings.NewReplacer("-", "", "_", "").Replace(name)) {
	case "EAN13":
		return FormatEAN13, nil
	case "EAN8":
		return FormatEAN8, nil
	case "UPCA":
		return FormatUPCA, nil
	case "UPCE":
		return FormatUPCE, nil
	}
	return 0, fmt.Errorf("unknown barcode format %q", name)
}

// MetadataKey identifies a type of metadata attached to a Result.
type MetadataKey int

const (
	MetadataOrientation MetadataKey = iota
	MetadataSymbologyIdentifier
	MetadataExtension
	MetadataIssueNumber
	MetadataSuggestedPrice
)

// Span is a half-open [Begin, End) range of pixel columns within a row.
type Span struct {
	Begin, End int
}

// Width returns the number of pixel columns the span covers.
func (s Span) Width() int { return s.End - s.Begin }

// Mirror reflects the span across a row of the given width. Used when a
// barcode was decoded from a reversed row.
func (s Span) Mirror(rowWidth int) Span {
	return Span{Begin: rowWidth - s.End, End: rowWidth - s.Begin}
}

// Result is the outcome of a successful decode: the digit string, the
// symbology it was read as, the row it came from, and the pixel-column
// span of the recognized symbol within that row.
type Result struct {
	Text      string
	Format    Format
	RowNumber int
	Span      Span
	Metadata  map[MetadataKey]interface{}
	Timestamp time.Time
}

// NewResult creates a Result for the given text, format, row, and span.
func NewResult(text string, format Format, rowNumber int, span Span) *Result {
	return &Result{
		Text:      text,
		Format:    format,
		RowNumber: rowNumber,
		Span:      span,
		Metadata:  make(map[MetadataKey]interface{}),
		Timestamp: time.Now(),
	}
}

// PutMetadata attaches a metadata key/value pair.
func (r *Result) PutMetadata(key MetadataKey, value interface{}) {
	r.Metadata[key] = value
}
