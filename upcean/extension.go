package upcean

import (
	"fmt"
	"strconv"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// extensionStartPattern is the bar-space-double-space guard introducing
// an EAN-2 or EAN-5 add-on after the main symbol.
var extensionStartPattern = []int{1, 1, 2}

// ext5CheckDigitEncodings maps the EAN-5 check digit to the parity
// pattern of its five digit cells.
var ext5CheckDigitEncodings = [10]int{
	0x18, 0x14, 0x12, 0x11, 0x0C, 0x06, 0x03, 0x0A, 0x09, 0x05,
}

// extension is a decoded EAN-2/EAN-5 add-on.
type extension struct {
	digits         string
	issueNumber    int    // EAN-2: periodical issue number
	suggestedPrice string // EAN-5: price, when encodable
}

// decodeExtension attempts to decode a supplemental add-on starting at
// or after rowOffset. Five digits are tried before two, as the original
// implementation does.
func decodeExtension(row *bitrow.Row, rowOffset int) (*extension, error) {
	start, err := FindGuardPattern(row, rowOffset, false, extensionStartPattern)
	if err != nil {
		return nil, err
	}
	if ext, err := decodeExtension5(row, start); err == nil {
		return ext, nil
	}
	return decodeExtension2(row, start)
}

func decodeExtension2(row *bitrow.Row, start scanline.Span) (*extension, error) {
	counters := make([]int, digitRuns)
	end := row.Len()
	rowOffset := start.End

	checkParity := 0
	var out [2]byte
	for x := 0; x < 2 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LAndGPatterns)
		if err != nil {
			return nil, err
		}
		out[x] = '0' + byte(digit%10)
		rowOffset += width
		if digit >= 10 {
			checkParity |= 1 << uint(1-x)
		}
		if x != 1 {
			// Skip the two-module separator between cells.
			rowOffset = row.NextSet(rowOffset)
			rowOffset = row.NextUnset(rowOffset)
		}
	}

	s := string(out[:])
	val, err := strconv.Atoi(s)
	if err != nil {
		return nil, scanline.ErrNotFound
	}
	if val%4 != checkParity {
		return nil, scanline.ErrNotFound
	}
	return &extension{digits: s, issueNumber: val}, nil
}

func decodeExtension5(row *bitrow.Row, start scanline.Span) (*extension, error) {
	counters := make([]int, digitRuns)
	end := row.Len()
	rowOffset := start.End

	lgParities := 0
	var out [5]byte
	for x := 0; x < 5 && rowOffset < end; x++ {
		digit, width, err := DecodeDigit(row, counters, rowOffset, LAndGPatterns)
		if err != nil {
			return nil, err
		}
		out[x] = '0' + byte(digit%10)
		rowOffset += width
		if digit >= 10 {
			lgParities |= 1 << uint(4-x)
		}
		if x != 4 {
			rowOffset = row.NextSet(rowOffset)
			rowOffset = row.NextUnset(rowOffset)
		}
	}

	s := string(out[:])
	checkDigit := -1
	for d := 0; d < 10; d++ {
		if lgParities == ext5CheckDigitEncodings[d] {
			checkDigit = d
			break
		}
	}
	if checkDigit < 0 || ext5Checksum(s) != checkDigit {
		return nil, scanline.ErrNotFound
	}
	return &extension{digits: s, suggestedPrice: parseExt5Price(s)}, nil
}

// ext5Checksum is the EAN-5 check: alternating 3/9 weights, mod 10.
func ext5Checksum(s string) int {
	sum := 0
	for i := len(s) - 2; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	for i := len(s) - 1; i >= 0; i -= 2 {
		sum += int(s[i] - '0')
	}
	sum *= 3
	return sum % 10
}

// parseExt5Price renders the EAN-5 value as a currency amount when its
// leading digit marks one, empty otherwise.
func parseExt5Price(raw string) string {
	if len(raw) != 5 {
		return ""
	}
	var currency string
	switch raw[0] {
	case '0':
		currency = "£"
	case '5':
		currency = "$"
	case '9':
		switch raw {
		case "90000": // no price
			return ""
		case "99991":
			return "0.00"
		case "99990":
			return "Used"
		}
	default:
	}
	amount, err := strconv.Atoi(raw[1:])
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s%d.%02d", currency, amount/100, amount%100)
}
