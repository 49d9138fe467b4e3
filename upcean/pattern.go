// Package upcean implements decoding and encoding of the UPC/EAN family
// of one-dimensional barcodes: EAN-13, EAN-8, UPC-A, and UPC-E, plus the
// EAN-2 and EAN-5 add-ons.
package upcean

import (
	"math"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// RecordPattern measures the widths of len(counters) consecutive
// alternating-color runs starting at start. The color of the first run is
// the color of the pixel at start. Fails NotFound when the row ends
// before all runs are complete.
func RecordPattern(row *bitrow.Row, start int, counters []int) error {
	numCounters := len(counters)
	for i := range counters {
		counters[i] = 0
	}
	end := row.Len()
	if start >= end {
		return scanline.ErrNotFound
	}
	isWhite := !row.Get(start)
	counterPosition := 0
	i := start
	for i < end {
		if row.Get(i) != isWhite {
			counters[counterPosition]++
		} else {
			counterPosition++
			if counterPosition == numCounters {
				break
			}
			counters[counterPosition] = 1
			isWhite = !isWhite
		}
		i++
	}
	// Accept a final run cut short by the end of the row.
	if counterPosition == numCounters || (counterPosition == numCounters-1 && i == end) {
		return nil
	}
	return scanline.ErrNotFound
}

// RecordPatternInReverse walks backward from start across len(counters)
// color transitions, then records forward from where it lands, so the
// counters come out in the same orientation RecordPattern would produce.
// Used to extend a match leftward without rescanning from the row origin.
func RecordPatternInReverse(row *bitrow.Row, start int, counters []int) error {
	transitionsLeft := len(counters)
	last := row.Get(start)
	for start > 0 && transitionsLeft >= 0 {
		start--
		if row.Get(start) != last {
			transitionsLeft--
			last = !last
		}
	}
	if transitionsLeft >= 0 {
		return scanline.ErrNotFound
	}
	return RecordPattern(row, start+1, counters)
}

// PatternMatchVariance scores how closely measured run widths match an
// ideal pattern, after scaling the pattern to the measured total width.
// Zero is a perfect match; larger is worse. Any single run deviating from
// its scaled ideal by more than maxIndividualVariance (a fraction of the
// module width) rejects the whole match with +Inf, no matter how good the
// other runs are.
func PatternMatchVariance(counters, pattern []int, maxIndividualVariance float64) float64 {
	total := 0
	patternLength := 0
	for i, c := range counters {
		total += c
		patternLength += pattern[i]
	}
	if total < patternLength {
		// Fewer pixels than pattern modules can never match.
		return math.Inf(1)
	}

	unitBarWidth := float64(total) / float64(patternLength)
	maxIndividualVariance *= unitBarWidth

	totalVariance := 0.0
	for i, c := range counters {
		scaled := float64(pattern[i]) * unitBarWidth
		variance := float64(c) - scaled
		if variance < 0 {
			variance = -variance
		}
		if variance > maxIndividualVariance {
			return math.Inf(1)
		}
		totalVariance += variance
	}
	return totalVariance / float64(total)
}
