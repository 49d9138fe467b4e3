package upcean

import (
	"strings"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// ean13FirstDigitEncodings maps an EAN-13 first digit to the L/G parity
// pattern of the six left-half digits, one bit per digit, G = 1. The
// first digit is never printed as bars; it is implied by the parities.
var ean13FirstDigitEncodings = [10]int{
	0x00, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A,
}

// EAN13 is the EAN-13 symbology.
type EAN13 struct {
	standardGuards
}

// NewEAN13Reader creates a row decoder for EAN-13.
func NewEAN13Reader() *Reader { return NewReader(EAN13{}) }

// Format returns FormatEAN13.
func (EAN13) Format() scanline.Format { return scanline.FormatEAN13 }

// DecodeMiddle decodes six left-half digits against the L+G table
// (recovering the implied first digit from their parities), crosses the
// middle guard, then decodes six right-half digits against L alone.
func (EAN13) DecodeMiddle(row *bitrow.Row, startGuard scanline.Span, digits *strings.Builder) (int, error) {
	counters := make([]int, digitRuns)
	end := row.Len()
	rowOffset := startGuard.End

	lgParities := 0
	for x := 0; x < 6 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LAndGPatterns)
		if err != nil {
			return 0, err
		}
		digits.WriteByte('0' + byte(digit%10))
		rowOffset += width
		if digit >= 10 {
			lgParities |= 1 << uint(5-x)
		}
	}
	if err := prependEAN13FirstDigit(digits, lgParities); err != nil {
		return 0, err
	}

	middle, err := FindMiddleGuardPattern(row, rowOffset)
	if err != nil {
		return 0, err
	}
	rowOffset = middle.End

	for x := 0; x < 6 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LPatterns)
		if err != nil {
			return 0, err
		}
		digits.WriteByte('0' + byte(digit))
		rowOffset += width
	}
	return rowOffset, nil
}

func prependEAN13FirstDigit(digits *strings.Builder, lgParities int) error {
	for d := 0; d < 10; d++ {
		if lgParities == ean13FirstDigitEncodings[d] {
			rest := digits.String()
			digits.Reset()
			digits.WriteByte('0' + byte(d))
			digits.WriteString(rest)
			return nil
		}
	}
	return scanline.ErrNotFound
}
