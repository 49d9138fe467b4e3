package upcean

import (
	"strings"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// upceParityPatterns gives the L/G parity pattern of the six UPC-E
// digits, indexed by [number system][check digit]. The number system and
// check digit are not printed as bars; both are implied by the parities.
var upceParityPatterns = [2][10]int{
	{0x38, 0x34, 0x32, 0x31, 0x2C, 0x26, 0x23, 0x2A, 0x29, 0x25},
	{0x07, 0x0B, 0x0D, 0x0E, 0x13, 0x19, 0x1C, 0x15, 0x16, 0x1A},
}

// UPCE is the UPC-E symbology: a zero-suppressed UPC-A with six printed
// digits, a six-module end guard instead of the usual one, and a
// checksum computed over the expanded UPC-A form. It overrides both
// DecodeEnd and CheckChecksum.
type UPCE struct{}

// NewUPCEReader creates a row decoder for UPC-E.
func NewUPCEReader() *Reader { return NewReader(UPCE{}) }

// Format returns FormatUPCE.
func (UPCE) Format() scanline.Format { return scanline.FormatUPCE }

// DecodeMiddle decodes the six digit cells against the L+G table and
// recovers the number system and check digit from their parities.
func (UPCE) DecodeMiddle(row *bitrow.Row, startGuard scanline.Span, digits *strings.Builder) (int, error) {
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
	if err := applyUPCEParities(digits, lgParities); err != nil {
		return 0, err
	}
	return rowOffset, nil
}

// DecodeEnd locates UPC-E's six-module end guard, which begins with a
// space.
func (UPCE) DecodeEnd(row *bitrow.Row, endStart int) (scanline.Span, error) {
	return FindGuardPattern(row, endStart, true, EndPattern)
}

// CheckChecksum validates the digits after expansion to UPC-A form.
func (UPCE) CheckChecksum(digits string) error {
	return CheckStandardChecksum(ExpandUPCE(digits))
}

func applyUPCEParities(digits *strings.Builder, lgParities int) error {
	for numSys := 0; numSys <= 1; numSys++ {
		for d := 0; d < 10; d++ {
			if lgParities == upceParityPatterns[numSys][d] {
				middle := digits.String()
				digits.Reset()
				digits.WriteByte('0' + byte(numSys))
				digits.WriteString(middle)
				digits.WriteByte('0' + byte(d))
				return nil
			}
		}
	}
	return scanline.ErrNotFound
}

// ExpandUPCE converts an 8-digit UPC-E value (number system, six digits,
// check digit) to its UPC-A equivalent. The last of the six digits
// selects where the suppressed zeros are reinserted. Inputs shorter than
// seven digits are returned unchanged.
func ExpandUPCE(upce string) string {
	if len(upce) < 7 {
		return upce
	}
	core := upce[1:7]
	var out strings.Builder
	out.WriteByte(upce[0])

	switch last := core[5]; last {
	case '0', '1', '2':
		out.WriteString(core[0:2])
		out.WriteByte(last)
		out.WriteString("0000")
		out.WriteString(core[2:5])
	case '3':
		out.WriteString(core[0:3])
		out.WriteString("00000")
		out.WriteString(core[3:5])
	case '4':
		out.WriteString(core[0:4])
		out.WriteString("00000")
		out.WriteByte(core[4])
	default:
		out.WriteString(core[0:5])
		out.WriteString("0000")
		out.WriteByte(last)
	}
	if len(upce) >= 8 {
		out.WriteByte(upce[7])
	}
	return out.String()
}
