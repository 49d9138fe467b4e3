package scanline

import "github.com/scanlinehq/scanline/bitrow"

// Binarizer converts luminance data into 1-bit black/white data.
type Binarizer interface {
	// BlackRow returns one binarized row. If row is non-nil and large
	// enough it is reused.
	BlackRow(y int, row *bitrow.Row) (*bitrow.Row, error)

	// BlackMatrix returns the full binarized matrix.
	BlackMatrix() (*bitrow.Matrix, error)

	// Source returns the underlying LuminanceSource.
	Source() LuminanceSource

	// Width returns the image width.
	Width() int

	// Height returns the image height.
	Height() int
}

// BinaryBitmap is the binarized view of an image handed to readers.
// It caches the black matrix across decode attempts.
type BinaryBitmap struct {
	binarizer Binarizer
	matrix    *bitrow.Matrix
}

// NewBinaryBitmap wraps a Binarizer.
func NewBinaryBitmap(b Binarizer) *BinaryBitmap {
	return &BinaryBitmap{binarizer: b}
}

// Width returns the bitmap width.
func (b *BinaryBitmap) Width() int { return b.binarizer.Width() }

// Height returns the bitmap height.
func (b *BinaryBitmap) Height() int { return b.binarizer.Height() }

// BlackRow returns one binarized row.
func (b *BinaryBitmap) BlackRow(y int, row *bitrow.Row) (*bitrow.Row, error) {
	return b.binarizer.BlackRow(y, row)
}

// BlackMatrix returns the binarized matrix, computing it once.
func (b *BinaryBitmap) BlackMatrix() (*bitrow.Matrix, error) {
	if b.matrix == nil {
		m, err := b.binarizer.BlackMatrix()
		if err != nil {
			return nil, err
		}
		b.matrix = m
	}
	return b.matrix, nil
}
