package upcean

import (
	"fmt"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// Module widths of complete symbols: guards plus seven modules per digit
// cell.
const (
	ean13ModuleWidth = 3 + 7*6 + 5 + 7*6 + 3 // 95
	ean8ModuleWidth  = 3 + 7*4 + 5 + 7*4 + 3 // 67
	upceModuleWidth  = 3 + 7*6 + 6           // 51
)

// quietZoneModules is the rendered quiet zone on each side of a symbol.
const quietZoneModules = 10

// appendPattern writes one run-length pattern into target at pos, the
// first run colored startBlack, and returns the width written.
func appendPattern(target []bool, pos int, pattern []int, startBlack bool) int {
	black := startBlack
	width := 0
	for _, runWidth := range pattern {
		for j := 0; j < runWidth; j++ {
			target[pos+width] = black
			width++
		}
		black = !black
	}
	return width
}

// RenderModules rasterizes a module pattern into a matrix of at least
// the requested size, scaling to an integral module width and centering
// with quiet zones.
func RenderModules(code []bool, width, height int) *bitrow.Matrix {
	inputWidth := len(code)
	fullWidth := inputWidth + 2*quietZoneModules
	if width < fullWidth {
		width = fullWidth
	}
	if height < 1 {
		height = 1
	}
	scale := width / fullWidth
	if scale < 1 {
		scale = 1
	}
	leftPadding := (width - inputWidth*scale) / 2

	out := bitrow.NewMatrix(width, height)
	for x := 0; x < inputWidth; x++ {
		if !code[x] {
			continue
		}
		start := leftPadding + x*scale
		for col := start; col < start+scale && col < width; col++ {
			for y := 0; y < height; y++ {
				out.Set(col, y)
			}
		}
	}
	return out
}

// checkDigits verifies s holds only ASCII digits.
func checkDigits(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return fmt.Errorf("%w: non-digit character %q", scanline.ErrFormat, s[i])
		}
	}
	return nil
}

// normalizeLength accepts contents either without the check digit
// (appending a computed one) or with it (validating it), and rejects any
// other length.
func normalizeLength(contents string, lengthWithout, lengthWith int) (string, error) {
	switch len(contents) {
	case lengthWithout:
		check, err := StandardCheckDigit(contents)
		if err != nil {
			return "", err
		}
		contents += string(rune('0' + check))
	case lengthWith:
		if err := CheckStandardChecksum(contents); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: contents must be %d or %d digits, got %d",
			scanline.ErrFormat, lengthWithout, lengthWith, len(contents))
	}
	if err := checkDigits(contents); err != nil {
		return "", err
	}
	return contents, nil
}

// EAN13Writer encodes EAN-13 symbols.
type EAN13Writer struct{}

// NewEAN13Writer creates an EAN-13 writer.
func NewEAN13Writer() *EAN13Writer { return &EAN13Writer{} }

// Encode renders contents (12 or 13 digits) as a matrix.
func (w *EAN13Writer) Encode(contents string, width, height int) (*bitrow.Matrix, error) {
	code, err := w.EncodeContents(contents)
	if err != nil {
		return nil, err
	}
	return RenderModules(code, width, height), nil
}

// EncodeContents encodes contents as a module pattern, true for black.
func (w *EAN13Writer) EncodeContents(contents string) ([]bool, error) {
	contents, err := normalizeLength(contents, 12, 13)
	if err != nil {
		return nil, err
	}
	parities := ean13FirstDigitEncodings[contents[0]-'0']
	code := make([]bool, ean13ModuleWidth)
	pos := appendPattern(code, 0, StartEndPattern, true)
	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += appendPattern(code, pos, LAndGPatterns[digit], false)
	}
	pos += appendPattern(code, pos, MiddlePattern, false)
	for i := 7; i <= 12; i++ {
		pos += appendPattern(code, pos, LPatterns[contents[i]-'0'], true)
	}
	appendPattern(code, pos, StartEndPattern, true)
	return code, nil
}

// EAN8Writer encodes EAN-8 symbols.
type EAN8Writer struct{}

// NewEAN8Writer creates an EAN-8 writer.
func NewEAN8Writer() *EAN8Writer { return &EAN8Writer{} }

// Encode renders contents (7 or 8 digits) as a matrix.
func (w *EAN8Writer) Encode(contents string, width, height int) (*bitrow.Matrix, error) {
	code, err := w.EncodeContents(contents)
	if err != nil {
		return nil, err
	}
	return RenderModules(code, width, height), nil
}

// EncodeContents encodes contents as a module pattern, true for black.
func (w *EAN8Writer) EncodeContents(contents string) ([]bool, error) {
	contents, err := normalizeLength(contents, 7, 8)
	if err != nil {
		return nil, err
	}
	code := make([]bool, ean8ModuleWidth)
	pos := appendPattern(code, 0, StartEndPattern, true)
	for i := 0; i <= 3; i++ {
		pos += appendPattern(code, pos, LPatterns[contents[i]-'0'], false)
	}
	pos += appendPattern(code, pos, MiddlePattern, false)
	for i := 4; i <= 7; i++ {
		pos += appendPattern(code, pos, LPatterns[contents[i]-'0'], true)
	}
	appendPattern(code, pos, StartEndPattern, true)
	return code, nil
}

// UPCAWriter encodes UPC-A symbols by rendering the EAN-13 form with a
// leading zero.
type UPCAWriter struct {
	ean13 EAN13Writer
}

// NewUPCAWriter creates a UPC-A writer.
func NewUPCAWriter() *UPCAWriter { return &UPCAWriter{} }

// Encode renders contents (11 or 12 digits) as a matrix.
func (w *UPCAWriter) Encode(contents string, width, height int) (*bitrow.Matrix, error) {
	code, err := w.EncodeContents(contents)
	if err != nil {
		return nil, err
	}
	return RenderModules(code, width, height), nil
}

// EncodeContents encodes contents as a module pattern, true for black.
func (w *UPCAWriter) EncodeContents(contents string) ([]bool, error) {
	return w.ean13.EncodeContents("0" + contents)
}

// UPCEWriter encodes UPC-E symbols.
type UPCEWriter struct{}

// NewUPCEWriter creates a UPC-E writer.
func NewUPCEWriter() *UPCEWriter { return &UPCEWriter{} }

// Encode renders contents (7 or 8 digits) as a matrix.
func (w *UPCEWriter) Encode(contents string, width, height int) (*bitrow.Matrix, error) {
	code, err := w.EncodeContents(contents)
	if err != nil {
		return nil, err
	}
	return RenderModules(code, width, height), nil
}

// EncodeContents encodes contents as a module pattern, true for black.
// The checksum is computed over the expanded UPC-A form.
func (w *UPCEWriter) EncodeContents(contents string) ([]bool, error) {
	switch len(contents) {
	case 7:
		check, err := StandardCheckDigit(ExpandUPCE(contents))
		if err != nil {
			return nil, err
		}
		contents += string(rune('0' + check))
	case 8:
		if err := CheckStandardChecksum(ExpandUPCE(contents)); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: contents must be 7 or 8 digits, got %d",
			scanline.ErrFormat, len(contents))
	}
	if err := checkDigits(contents); err != nil {
		return nil, err
	}
	numSys := int(contents[0] - '0')
	if numSys != 0 && numSys != 1 {
		return nil, fmt.Errorf("%w: UPC-E number system must be 0 or 1", scanline.ErrFormat)
	}
	parities := upceParityPatterns[numSys][contents[7]-'0']

	code := make([]bool, upceModuleWidth)
	pos := appendPattern(code, 0, StartEndPattern, true)
	for i := 1; i <= 6; i++ {
		digit := int(contents[i] - '0')
		if (parities>>(6-i))&1 == 1 {
			digit += 10
		}
		pos += appendPattern(code, pos, LAndGPatterns[digit], false)
	}
	appendPattern(code, pos, EndPattern, false)
	return code, nil
}
