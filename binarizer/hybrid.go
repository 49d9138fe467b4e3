package binarizer

import (
	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

const (
	blockSizePower   = 3
	blockSize        = 1 << blockSizePower
	blockSizeMask    = blockSize - 1
	minimumDimension = blockSize * 5
	minDynamicRange  = 24
)

// Hybrid thresholds each 8x8 block against an average of neighboring
// block black points. Slower than GlobalHistogram but much better on
// images with shadows and gradients. Row access falls back to the
// global-histogram path.
type Hybrid struct {
	GlobalHistogram
	matrix *bitrow.Matrix
}

// NewHybrid creates a Hybrid binarizer over source.
func NewHybrid(source scanline.LuminanceSource) *Hybrid {
	return &Hybrid{GlobalHistogram: *NewGlobalHistogram(source)}
}

// BlackMatrix returns the locally thresholded matrix, computing it once.
func (h *Hybrid) BlackMatrix() (*bitrow.Matrix, error) {
	if h.matrix != nil {
		return h.matrix, nil
	}
	source := h.Source()
	width := source.Width()
	height := source.Height()
	if width < minimumDimension || height < minimumDimension {
		// Too small for block statistics.
		m, err := h.GlobalHistogram.BlackMatrix()
		if err != nil {
			return nil, err
		}
		h.matrix = m
		return h.matrix, nil
	}

	lum := source.Matrix()
	subWidth := width >> blockSizePower
	if width&blockSizeMask != 0 {
		subWidth++
	}
	subHeight := height >> blockSizePower
	if height&blockSizeMask != 0 {
		subHeight++
	}
	blackPoints := blockBlackPoints(lum, subWidth, subHeight, width, height)
	matrix := bitrow.NewMatrix(width, height)
	thresholdBlocks(lum, subWidth, subHeight, width, height, blackPoints, matrix)
	h.matrix = matrix
	return h.matrix, nil
}

// thresholdBlocks applies, to each block, the average black point of the
// surrounding 5x5 block neighborhood.
func thresholdBlocks(lum []byte, subWidth, subHeight, width, height int, blackPoints [][]int, matrix *bitrow.Matrix) {
	maxYOffset := height - blockSize
	maxXOffset := width - blockSize
	for y := 0; y < subHeight; y++ {
		yoffset := y << blockSizePower
		if yoffset > maxYOffset {
			yoffset = maxYOffset
		}
		top := clampBlock(y, subHeight-3)
		for x := 0; x < subWidth; x++ {
			xoffset := x << blockSizePower
			if xoffset > maxXOffset {
				xoffset = maxXOffset
			}
			left := clampBlock(x, subWidth-3)
			sum := 0
			for dy := -2; dy <= 2; dy++ {
				row := blackPoints[top+dy]
				sum += row[left-2] + row[left-1] + row[left] + row[left+1] + row[left+2]
			}
			average := sum / 25
			for dy, offset := 0, yoffset*width+xoffset; dy < blockSize; dy, offset = dy+1, offset+width {
				for dx := 0; dx < blockSize; dx++ {
					if int(lum[offset+dx]) <= average {
						matrix.Set(xoffset+dx, yoffset+dy)
					}
				}
			}
		}
	}
}

func clampBlock(value, max int) int {
	if value < 2 {
		return 2
	}
	if value > max {
		return max
	}
	return value
}

// blockBlackPoints computes a black point per 8x8 block. Low-contrast
// blocks assume white background and borrow from already-computed
// neighbors so the interior of wide black bars stays black.
func blockBlackPoints(lum []byte, subWidth, subHeight, width, height int) [][]int {
	maxYOffset := height - blockSize
	maxXOffset := width - blockSize
	blackPoints := make([][]int, subHeight)
	for i := range blackPoints {
		blackPoints[i] = make([]int, subWidth)
	}
	for y := 0; y < subHeight; y++ {
		yoffset := y << blockSizePower
		if yoffset > maxYOffset {
			yoffset = maxYOffset
		}
		for x := 0; x < subWidth; x++ {
			xoffset := x << blockSizePower
			if xoffset > maxXOffset {
				xoffset = maxXOffset
			}
			sum := 0
			mn, mx := 0xFF, 0
			for yy, offset := 0, yoffset*width+xoffset; yy < blockSize; yy, offset = yy+1, offset+width {
				for xx := 0; xx < blockSize; xx++ {
					pixel := int(lum[offset+xx])
					sum += pixel
					if pixel < mn {
						mn = pixel
					}
					if pixel > mx {
						mx = pixel
					}
				}
				// Once the range is known to be dynamic, the remaining
				// rows only need the sum.
				if mx-mn > minDynamicRange {
					for yy, offset = yy+1, offset+width; yy < blockSize; yy, offset = yy+1, offset+width {
						for xx := 0; xx < blockSize; xx++ {
							sum += int(lum[offset+xx])
						}
					}
				}
			}

			average := sum >> (blockSizePower * 2)
			if mx-mn <= minDynamicRange {
				average = mn / 2
				if y > 0 && x > 0 {
					neighbor := (blackPoints[y-1][x] + 2*blackPoints[y][x-1] + blackPoints[y-1][x-1]) / 4
					if mn < neighbor {
						average = neighbor
					}
				}
			}
			blackPoints[y][x] = average
		}
	}
	return blackPoints
}
