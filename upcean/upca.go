package upcean

import (
	"context"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// UPCAReader decodes UPC-A barcodes. A UPC-A symbol is an EAN-13 symbol
// whose implied first digit is zero, so decoding delegates to EAN-13 and
// strips that zero; an implied digit other than zero means the symbol is
// not UPC-A.
type UPCAReader struct {
	ean13 *Reader
}

// NewUPCAReader creates a row decoder for UPC-A.
func NewUPCAReader() *UPCAReader {
	return &UPCAReader{ean13: NewEAN13Reader()}
}

// DecodeRow decodes a UPC-A barcode from a single row.
func (r *UPCAReader) DecodeRow(rowNumber int, row *bitrow.Row, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	result, err := r.ean13.DecodeRow(rowNumber, row, opts)
	if err != nil {
		return nil, err
	}
	if len(result.Text) == 0 || result.Text[0] != '0' {
		return nil, scanline.ErrFormat
	}
	upca := scanline.NewResult(result.Text[1:], scanline.FormatUPCA, result.RowNumber, result.Span)
	for k, v := range result.Metadata {
		upca.PutMetadata(k, v)
	}
	return upca, nil
}

// Decode scans the image for a UPC-A barcode.
func (r *UPCAReader) Decode(ctx context.Context, image *scanline.BinaryBitmap, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	return DecodeRows(ctx, image, r, opts)
}
