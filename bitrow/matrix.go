package bitrow

import "strings"

// Matrix is a bit-packed 2D black/white image. x is the column, y the
// row; the origin is the top-left corner.
type Matrix struct {
	width    int
	height   int
	rowWords int
	data     []uint64
}

// NewMatrix creates an all-white matrix with the given dimensions.
func NewMatrix(width, height int) *Matrix {
	if width < 1 || height < 1 {
		panic("bitrow: matrix dimensions must be positive")
	}
	rowWords := (width + wordMask) >> wordShift
	return &Matrix{
		width:    width,
		height:   height,
		rowWords: rowWords,
		data:     make([]uint64, rowWords*height),
	}
}

// Width returns the matrix width.
func (m *Matrix) Width() int { return m.width }

// Height returns the matrix height.
func (m *Matrix) Height() int { return m.height }

// Get reports whether the pixel at (x, y) is black.
func (m *Matrix) Get(x, y int) bool {
	return m.data[y*m.rowWords+x>>wordShift]&(1<<uint(x&wordMask)) != 0
}

// Set marks the pixel at (x, y) black.
func (m *Matrix) Set(x, y int) {
	m.data[y*m.rowWords+x>>wordShift] |= 1 << uint(x&wordMask)
}

// FlipAll inverts every pixel, for retrying decodes on inverted images.
func (m *Matrix) FlipAll() {
	for i := range m.data {
		m.data[i] = ^m.data[i]
	}
}

// Row copies row y into the given Row, allocating when it is nil or too
// small.
func (m *Matrix) Row(y int, row *Row) *Row {
	if row == nil || row.Len() < m.width {
		row = NewRow(m.width)
	} else {
		row.Clear()
	}
	copy(row.words, m.data[y*m.rowWords:(y+1)*m.rowWords])
	return row
}

// String renders the matrix with 'X' for black and '.' for white, one
// line per row.
func (m *Matrix) String() string {
	var sb strings.Builder
	sb.Grow(m.height * (m.width + 1))
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.Get(x, y) {
				sb.WriteByte('X')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
