package upcean

import (
	"context"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// MultiReader tries each UPC/EAN family member on a row. EAN-13
// structurally subsumes UPC-A, so with no format hints a UPC-A symbol
// reads as its 13-digit EAN-13 form; hint UPC-A alone to get the
// 12-digit reading.
type MultiReader struct {
	readers []RowDecoder
}

// NewMultiReader builds a reader for the symbologies the options allow.
// A nil options value enables all four.
func NewMultiReader(opts *scanline.DecodeOptions) *MultiReader {
	ordered := []struct {
		format scanline.Format
		build  func() RowDecoder
	}{
		{scanline.FormatEAN13, func() RowDecoder { return NewEAN13Reader() }},
		{scanline.FormatUPCA, func() RowDecoder { return NewUPCAReader() }},
		{scanline.FormatEAN8, func() RowDecoder { return NewEAN8Reader() }},
		{scanline.FormatUPCE, func() RowDecoder { return NewUPCEReader() }},
	}
	var readers []RowDecoder
	for _, entry := range ordered {
		if opts.AllowsFormat(entry.format) {
			readers = append(readers, entry.build())
		}
	}
	return &MultiReader{readers: readers}
}

// DecodeRow tries each symbology in turn, returning the first success or
// the most informative failure.
func (m *MultiReader) DecodeRow(rowNumber int, row *bitrow.Row, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	bestErr := error(scanline.ErrNotFound)
	for _, reader := range m.readers {
		result, err := reader.DecodeRow(rowNumber, row, opts)
		if err == nil {
			return result, nil
		}
		bestErr = scanline.PreferredFailure(bestErr, err)
	}
	return nil, bestErr
}

// Decode scans the image with every enabled symbology per row.
func (m *MultiReader) Decode(ctx context.Context, image *scanline.BinaryBitmap, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	return DecodeRows(ctx, image, m, opts)
}
