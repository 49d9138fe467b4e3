// Package bitrow provides bit-packed pixel rows and matrices for barcode
// processing. A set bit is a black pixel.
package bitrow

import (
	"math/bits"
	"strings"
)

const (
	wordBits  = 64
	wordShift = 6
	wordMask  = wordBits - 1
)

// Row is a fixed-length sequence of binary pixels packed into uint64
// words. The zero value is an empty row.
type Row struct {
	words []uint64
	size  int
}

// NewRow creates an all-white row of the given length.
func NewRow(size int) *Row {
	if size <= 0 {
		return &Row{}
	}
	return &Row{
		words: make([]uint64, (size+wordMask)>>wordShift),
		size:  size,
	}
}

// NewRowFromBools creates a row from a boolean pixel pattern, true for black.
func NewRowFromBools(pixels []bool) *Row {
	r := NewRow(len(pixels))
	for i, black := range pixels {
		if black {
			r.Set(i)
		}
	}
	return r
}

// Len returns the number of pixels in the row.
func (r *Row) Len() int { return r.size }

// Get reports whether pixel i is black.
func (r *Row) Get(i int) bool {
	return r.words[i>>wordShift]&(1<<uint(i&wordMask)) != 0
}

// Set marks pixel i black.
func (r *Row) Set(i int) {
	r.words[i>>wordShift] |= 1 << uint(i&wordMask)
}

// Flip inverts pixel i.
func (r *Row) Flip(i int) {
	r.words[i>>wordShift] ^= 1 << uint(i&wordMask)
}

// SetRange marks pixels [start, end) black.
func (r *Row) SetRange(start, end int) {
	if start < 0 || end < start || end > r.size {
		panic("bitrow: invalid range")
	}
	for i := start; i < end; i++ {
		r.Set(i)
	}
}

// Clear makes every pixel white.
func (r *Row) Clear() {
	for i := range r.words {
		r.words[i] = 0
	}
}

// NextSet returns the index of the first black pixel at or after from,
// or the row length if there is none.
func (r *Row) NextSet(from int) int {
	if from >= r.size {
		return r.size
	}
	wi := from >> wordShift
	w := r.words[wi] &^ ((1 << uint(from&wordMask)) - 1)
	for w == 0 {
		wi++
		if wi == len(r.words) {
			return r.size
		}
		w = r.words[wi]
	}
	i := wi<<wordShift + bits.TrailingZeros64(w)
	if i > r.size {
		return r.size
	}
	return i
}

// NextUnset returns the index of the first white pixel at or after from,
// or the row length if there is none.
func (r *Row) NextUnset(from int) int {
	if from >= r.size {
		return r.size
	}
	wi := from >> wordShift
	w := ^r.words[wi] &^ ((1 << uint(from&wordMask)) - 1)
	for w == 0 {
		wi++
		if wi == len(r.words) {
			return r.size
		}
		w = ^r.words[wi]
	}
	i := wi<<wordShift + bits.TrailingZeros64(w)
	if i > r.size {
		return r.size
	}
	return i
}

// IsRange reports whether every pixel in [start, end) has the given
// color, true for black. An empty range is vacuously uniform.
func (r *Row) IsRange(start, end int, black bool) bool {
	if start < 0 || end < start || end > r.size {
		panic("bitrow: invalid range")
	}
	for i := start; i < end; i++ {
		if r.Get(i) != black {
			return false
		}
	}
	return true
}

// Reverse mirrors the row in place, so pixel i becomes pixel len-1-i.
func (r *Row) Reverse() {
	for i, j := 0, r.size-1; i < j; i, j = i+1, j-1 {
		a, b := r.Get(i), r.Get(j)
		if a != b {
			r.Flip(i)
			r.Flip(j)
		}
	}
}

// Clone returns a copy of the row.
func (r *Row) Clone() *Row {
	w := make([]uint64, len(r.words))
	copy(w, r.words)
	return &Row{words: w, size: r.size}
}

// String renders the row with 'X' for black and '.' for white.
func (r *Row) String() string {
	var sb strings.Builder
	sb.Grow(r.size)
	for i := 0; i < r.size; i++ {
		if r.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
