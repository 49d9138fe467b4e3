package upcean

import (
	"strings"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// EAN8 is the EAN-8 symbology. Both halves use plain L encodings; there
// is no implied digit.
type EAN8 struct {
	standardGuards
}

// NewEAN8Reader creates a row decoder for EAN-8.
func NewEAN8Reader() *Reader { return NewReader(EAN8{}) }

// Format returns FormatEAN8.
func (EAN8) Format() scanline.Format { return scanline.FormatEAN8 }

// DecodeMiddle decodes four L digits, the middle guard, then four more.
func (EAN8) DecodeMiddle(row *bitrow.Row, startGuard scanline.Span, digits *strings.Builder) (int, error) {
	counters := make([]int, digitRuns)
	end := row.Len()
	rowOffset := startGuard.End

	for x := 0; x < 4 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LPatterns)
		if err != nil {
			return 0, err
		}
		digits.WriteByte('0' + byte(digit))
		rowOffset += width
	}

	middle, err := FindMiddleGuardPattern(row, rowOffset)
	if err != nil {
		return 0, err
	}
	rowOffset = middle.End

	for x := 0; x < 4 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LPatterns)
		if err != nil {
			return 0, err
		}
		digits.WriteByte('0' + byte(digit))
		rowOffset += width
	}
	return rowOffset, nil
}
