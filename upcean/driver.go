package upcean

import (
	"context"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// DecodeRows samples rows of the image from the middle outward, handing
// each to dec until one decodes. Each sampled row is tried forward and
// reversed (for upside-down scans). Without TryHarder it samples up to 15
// rows with a step of height/32; with TryHarder it samples every row.
//
// If every sampled row fails, the single most informative failure is
// returned: Checksum or Format (a barcode-shaped pattern was seen) in
// preference to NotFound. ctx is checked between rows; a single row's
// decode is fast and runs to completion.
func DecodeRows(ctx context.Context, image *scanline.BinaryBitmap, dec RowDecoder, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	width := image.Width()
	height := image.Height()
	row := bitrow.NewRow(width)

	tryHarder := opts != nil && opts.TryHarder
	rowStep := height >> 5
	if tryHarder {
		rowStep = height >> 8
	}
	if rowStep < 1 {
		rowStep = 1
	}
	maxRows := 15
	if tryHarder {
		maxRows = height
	}

	bestErr := error(scanline.ErrNotFound)
	middle := height / 2
	for i := 0; i < maxRows; i++ {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		// 0, +step, -step, +2*step, ...
		stepsFromMiddle := (i + 1) / 2
		rowNumber := middle
		if i&1 == 0 {
			rowNumber += rowStep * stepsFromMiddle
		} else {
			rowNumber -= rowStep * stepsFromMiddle
		}
		if rowNumber < 0 || rowNumber >= height {
			break
		}

		var err error
		row, err = image.BlackRow(rowNumber, row)
		if err != nil {
			continue
		}

		for attempt := 0; attempt < 2; attempt++ {
			if attempt == 1 {
				row.Reverse()
			}
			result, err := dec.DecodeRow(rowNumber, row, opts)
			if err != nil {
				bestErr = scanline.PreferredFailure(bestErr, err)
				continue
			}
			if attempt == 1 {
				result.PutMetadata(scanline.MetadataOrientation, 180)
				result.Span = result.Span.Mirror(width)
			}
			return result, nil
		}
	}
	return nil, bestErr
}

// Decode scans the image for this reader's symbology.
func (r *Reader) Decode(ctx context.Context, image *scanline.BinaryBitmap, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	return DecodeRows(ctx, image, r, opts)
}
