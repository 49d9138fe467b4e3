package upcean

import (
	"strings"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// Symbology is the capability set one UPC/EAN family member supplies to
// the generic row decoder: how to decode the digits between the guards,
// how the symbol ends, and which checksum rule applies. EAN-13, EAN-8,
// and UPC-A share the default end guard and checksum; UPC-E overrides
// both.
type Symbology interface {
	// Format identifies the symbology.
	Format() scanline.Format

	// DecodeMiddle decodes the digit cells following the start guard,
	// appending ASCII digits to digits, and returns the row offset where
	// the end guard search should begin.
	DecodeMiddle(row *bitrow.Row, startGuard scanline.Span, digits *strings.Builder) (int, error)

	// DecodeEnd locates the symbology's end guard at or after endStart.
	DecodeEnd(row *bitrow.Row, endStart int) (scanline.Span, error)

	// CheckChecksum validates the fully assembled digit string.
	CheckChecksum(digits string) error
}

// standardGuards supplies the shared end-guard and checksum behavior;
// variants embed it and override as needed.
type standardGuards struct{}

func (standardGuards) DecodeEnd(row *bitrow.Row, endStart int) (scanline.Span, error) {
	return FindGuardPattern(row, endStart, false, StartEndPattern)
}

func (standardGuards) CheckChecksum(digits string) error {
	return CheckStandardChecksum(digits)
}

// RowDecoder decodes one barcode from a single pixel row.
type RowDecoder interface {
	DecodeRow(rowNumber int, row *bitrow.Row, opts *scanline.DecodeOptions) (*scanline.Result, error)
}

// Reader runs the row-decode state machine for one symbology. It is
// stateless apart from the symbology value and safe for concurrent use
// on distinct rows.
type Reader struct {
	sym Symbology
}

// NewReader creates a row decoder for the given symbology.
func NewReader(sym Symbology) *Reader {
	return &Reader{sym: sym}
}

// DecodeRow decodes one candidate barcode from row. Stages run in a
// fixed order (start guard, middle digits, end guard, checksum) and the
// first failing stage fails the row; there is no backtracking within a
// row. Retrying belongs to the row-sampling driver.
func (r *Reader) DecodeRow(rowNumber int, row *bitrow.Row, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	startGuard, err := FindStartGuardPattern(row)
	if err != nil {
		return nil, err
	}

	var digits strings.Builder
	endStart, err := r.sym.DecodeMiddle(row, startGuard, &digits)
	if err != nil {
		return nil, err
	}

	endGuard, err := r.sym.DecodeEnd(row, endStart)
	if err != nil {
		return nil, err
	}

	// The symbol must be followed by a quiet zone at least as wide as the
	// end guard, or the match is likely a slice of something larger.
	quietEnd := endGuard.End + endGuard.Width()
	if quietEnd >= row.Len() || !row.IsRange(endGuard.End, quietEnd, false) {
		return nil, scanline.ErrNotFound
	}

	text := digits.String()
	// Every family member encodes at least eight digits.
	if len(text) < 8 {
		return nil, scanline.ErrFormat
	}
	if err := r.sym.CheckChecksum(text); err != nil {
		return nil, err
	}

	result := scanline.NewResult(text, r.sym.Format(), rowNumber,
		scanline.Span{Begin: startGuard.Begin, End: endGuard.End})
	result.PutMetadata(scanline.MetadataSymbologyIdentifier, symbologyIdentifier(r.sym.Format()))

	extLength := 0
	if ext, err := decodeExtension(row, endGuard.End); err == nil {
		extLength = len(ext.digits)
		result.PutMetadata(scanline.MetadataExtension, ext.digits)
		if ext.issueNumber != 0 {
			result.PutMetadata(scanline.MetadataIssueNumber, ext.issueNumber)
		}
		if ext.suggestedPrice != "" {
			result.PutMetadata(scanline.MetadataSuggestedPrice, ext.suggestedPrice)
		}
	}
	if opts != nil && len(opts.AllowedExtensions) > 0 {
		allowed := false
		for _, n := range opts.AllowedExtensions {
			if extLength == n {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, scanline.ErrNotFound
		}
	}
	return result, nil
}

// symbologyIdentifier returns the AIM symbology identifier for the
// format: ]E0 for EAN-13/UPC-A/UPC-E, ]E4 for EAN-8.
func symbologyIdentifier(f scanline.Format) string {
	if f == scanline.FormatEAN8 {
		return "]E4"
	}
	return "]E0"
}
