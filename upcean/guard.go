package upcean

import (
	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// Acceptance thresholds. Guard matching is strict (it discriminates the
// presence of any barcode); digit matching reuses the same average bound
// but as a best-of competition. The relative magnitudes fix the
// false-accept/false-reject trade on noisy scans and are not tunable.
const (
	maxAvgVariance        = 0.48
	maxIndividualVariance = 0.7
)

// Guard patterns, in ideal module widths. These are the UPC/EAN
// standard's reference marks and must match bit for bit.
var (
	// StartEndPattern is the bar-space-bar guard at both ends of EAN and
	// UPC-A symbols and the start of UPC-E.
	StartEndPattern = []int{1, 1, 1}

	// MiddlePattern separates the left and right halves.
	MiddlePattern = []int{1, 1, 1, 1, 1}

	// EndPattern terminates a UPC-E symbol, which has no right half.
	EndPattern = []int{1, 1, 1, 1, 1, 1}
)

// FindGuardPattern slides a window across the row from rowOffset looking
// for the first run sequence matching pattern within the guard threshold.
// whiteFirst gives the required color of the first run; the search aligns
// to the next edge of that color before measuring. Fails NotFound when
// the row is exhausted.
func FindGuardPattern(row *bitrow.Row, rowOffset int, whiteFirst bool, pattern []int) (scanline.Span, error) {
	return findGuardPattern(row, rowOffset, whiteFirst, pattern, make([]int, len(pattern)))
}

func findGuardPattern(row *bitrow.Row, rowOffset int, whiteFirst bool, pattern, counters []int) (scanline.Span, error) {
	width := row.Len()
	if whiteFirst {
		rowOffset = row.NextUnset(rowOffset)
	} else {
		rowOffset = row.NextSet(rowOffset)
	}
	counterPosition := 0
	patternStart := rowOffset
	patternLength := len(pattern)
	isWhite := whiteFirst

	for x := rowOffset; x < width; x++ {
		if row.Get(x) != isWhite {
			counters[counterPosition]++
			continue
		}
		if counterPosition == patternLength-1 {
			if PatternMatchVariance(counters, pattern, maxIndividualVariance) < maxAvgVariance {
				return scanline.Span{Begin: patternStart, End: x}, nil
			}
			// Slide the window by the first run pair and keep going.
			patternStart += counters[0] + counters[1]
			copy(counters, counters[2:counterPosition+1])
			counters[counterPosition-1] = 0
			counters[counterPosition] = 0
			counterPosition--
		} else {
			counterPosition++
		}
		counters[counterPosition] = 1
		isWhite = !isWhite
	}
	return scanline.Span{}, scanline.ErrNotFound
}

// FindStartGuardPattern locates the left anchor of the symbol: the first
// start guard that is preceded by a quiet zone at least as wide as the
// guard itself. All downstream offsets are relative to this anchor.
func FindStartGuardPattern(row *bitrow.Row) (scanline.Span, error) {
	counters := make([]int, len(StartEndPattern))
	nextStart := 0
	for {
		for i := range counters {
			counters[i] = 0
		}
		candidate, err := findGuardPattern(row, nextStart, false, StartEndPattern, counters)
		if err != nil {
			return scanline.Span{}, err
		}
		start := candidate.Begin
		nextStart = candidate.End
		quietStart := start - (nextStart - start)
		if quietStart >= 0 && row.IsRange(quietStart, start, false) {
			return candidate, nil
		}
	}
}

// FindMiddleGuardPattern locates the middle guard at or after rowOffset.
func FindMiddleGuardPattern(row *bitrow.Row, rowOffset int) (scanline.Span, error) {
	return FindGuardPattern(row, rowOffset, true, MiddlePattern)
}
