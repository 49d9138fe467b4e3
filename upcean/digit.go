package upcean

import (
	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// digitRuns is the number of alternating runs in one UPC/EAN digit cell.
const digitRuns = 4

// LPatterns holds the "odd" (L) encodings of digits 0-9, as ideal run
// widths totaling seven modules.
var LPatterns = [][]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
}

// LAndGPatterns holds the L encodings at indices 0-9 and the "even" (G)
// encodings at 10-19. A G pattern is its L pattern reversed; EAN
// symbologies use the choice of parity to encode an extra digit.
var LAndGPatterns = [][]int{
	{3, 2, 1, 1}, // 0
	{2, 2, 2, 1}, // 1
	{2, 1, 2, 2}, // 2
	{1, 4, 1, 1}, // 3
	{1, 1, 3, 2}, // 4
	{1, 2, 3, 1}, // 5
	{1, 1, 1, 4}, // 6
	{1, 3, 1, 2}, // 7
	{1, 2, 1, 3}, // 8
	{3, 1, 1, 2}, // 9
	{1, 1, 2, 3}, // 10 = G 0
	{1, 2, 2, 2}, // 11 = G 1
	{2, 2, 1, 2}, // 12 = G 2
	{1, 1, 4, 1}, // 13 = G 3
	{2, 3, 1, 1}, // 14 = G 4
	{1, 3, 2, 1}, // 15 = G 5
	{4, 1, 1, 1}, // 16 = G 6
	{2, 1, 3, 1}, // 17 = G 7
	{3, 1, 2, 1}, // 18 = G 8
	{2, 1, 1, 3}, // 19 = G 9
}

// DecodeDigit records one digit cell's run-length vector at rowOffset and
// scores it against every candidate in patterns, keeping the lowest
// variance. It returns the index of the best match and the pixel width
// the cell consumed, so the caller decodes the next digit at
// rowOffset+width. Fails NotFound when no candidate scores within the
// acceptance threshold: a defect that severe is unrecoverable for this
// row. counters is a caller-owned scratch buffer of length four.
func DecodeDigit(row *bitrow.Row, counters []int, rowOffset int, patterns [][]int) (digit, width int, err error) {
	if err := RecordPattern(row, rowOffset, counters); err != nil {
		return 0, 0, err
	}
	bestVariance := maxAvgVariance
	bestMatch := -1
	for i, pattern := range patterns {
		variance := PatternMatchVariance(counters, pattern, maxIndividualVariance)
		if variance < bestVariance {
			bestVariance = variance
			bestMatch = i
		}
	}
	if bestMatch < 0 {
		return 0, 0, scanline.ErrNotFound
	}
	for _, c := range counters {
		width += c
	}
	return bestMatch, width, nil
}
