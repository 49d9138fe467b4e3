// Package binarizer converts greyscale luminance data into the 1-bit
// black/white rows and matrices the decoders consume.
package binarizer

import (
	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

const (
	histogramBits    = 5
	histogramShift   = 8 - histogramBits
	histogramBuckets = 1 << histogramBits
)

// GlobalHistogram thresholds against a single black point estimated from
// a luminance histogram. Fast, and effective on evenly lit images; use
// Hybrid for photographs with shadows or gradients.
type GlobalHistogram struct {
	source  scanline.LuminanceSource
	lumBuf  []byte
	buckets [histogramBuckets]int
}

// NewGlobalHistogram creates a GlobalHistogram binarizer over source.
func NewGlobalHistogram(source scanline.LuminanceSource) *GlobalHistogram {
	return &GlobalHistogram{source: source}
}

// Source returns the underlying luminance source.
func (g *GlobalHistogram) Source() scanline.LuminanceSource { return g.source }

// Width returns the image width.
func (g *GlobalHistogram) Width() int { return g.source.Width() }

// Height returns the image height.
func (g *GlobalHistogram) Height() int { return g.source.Height() }

// BlackRow binarizes one row against a black point estimated from that
// row alone, applying a mild sharpening kernel to counter blur.
func (g *GlobalHistogram) BlackRow(y int, row *bitrow.Row) (*bitrow.Row, error) {
	width := g.source.Width()
	if row == nil || row.Len() < width {
		row = bitrow.NewRow(width)
	} else {
		row.Clear()
	}

	g.reset(width)
	lum := g.source.Row(y, g.lumBuf)
	for x := 0; x < width; x++ {
		g.buckets[int(lum[x])>>histogramShift]++
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	if width < 3 {
		for x := 0; x < width; x++ {
			if int(lum[x]) < blackPoint {
				row.Set(x)
			}
		}
		return row, nil
	}
	left := int(lum[0])
	center := int(lum[1])
	for x := 1; x < width-1; x++ {
		right := int(lum[x+1])
		// -1 4 -1 sharpening, halved
		if (center*4-left-right)/2 < blackPoint {
			row.Set(x)
		}
		left, center = center, right
	}
	return row, nil
}

// BlackMatrix binarizes the whole image against a single black point
// estimated from a few interior rows.
func (g *GlobalHistogram) BlackMatrix() (*bitrow.Matrix, error) {
	width := g.source.Width()
	height := g.source.Height()
	matrix := bitrow.NewMatrix(width, height)

	g.reset(width)
	for y := 1; y < 5; y++ {
		lum := g.source.Row(height*y/5, g.lumBuf)
		right := width * 4 / 5
		for x := width / 5; x < right; x++ {
			g.buckets[int(lum[x])>>histogramShift]++
		}
	}
	blackPoint, err := estimateBlackPoint(g.buckets[:])
	if err != nil {
		return nil, err
	}

	lum := g.source.Matrix()
	for y := 0; y < height; y++ {
		offset := y * width
		for x := 0; x < width; x++ {
			if int(lum[offset+x]) < blackPoint {
				matrix.Set(x, y)
			}
		}
	}
	return matrix, nil
}

func (g *GlobalHistogram) reset(width int) {
	if len(g.lumBuf) < width {
		g.lumBuf = make([]byte, width)
	}
	g.buckets = [histogramBuckets]int{}
}

// estimateBlackPoint picks the valley between the two dominant histogram
// peaks. Fails NotFound when the histogram has no usable bimodal shape,
// which is typical of blank or uniformly colored rows.
func estimateBlackPoint(buckets []int) (int, error) {
	numBuckets := len(buckets)
	maxBucketCount := 0
	firstPeak := 0
	firstPeakSize := 0
	for x, count := range buckets {
		if count > firstPeakSize {
			firstPeak = x
			firstPeakSize = count
		}
		if count > maxBucketCount {
			maxBucketCount = count
		}
	}

	// Second peak: favor distance from the first.
	secondPeak := 0
	secondPeakScore := 0
	for x, count := range buckets {
		dist := x - firstPeak
		score := count * dist * dist
		if score > secondPeakScore {
			secondPeak = x
			secondPeakScore = score
		}
	}
	if firstPeak > secondPeak {
		firstPeak, secondPeak = secondPeak, firstPeak
	}
	if secondPeak-firstPeak <= numBuckets/16 {
		return 0, scanline.ErrNotFound
	}

	bestValley := secondPeak - 1
	bestValleyScore := -1
	for x := secondPeak - 1; x > firstPeak; x-- {
		fromFirst := x - firstPeak
		score := fromFirst * fromFirst * (secondPeak - x) * (maxBucketCount - buckets[x])
		if score > bestValleyScore {
			bestValley = x
			bestValleyScore = score
		}
	}
	return bestValley << histogramShift, nil
}
