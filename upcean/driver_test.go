package upcean

import (
	"context"
	"errors"
	"testing"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
)

// rowsBinarizer serves pre-binarized rows, standing in for a real image.
type rowsBinarizer struct {
	rows  []*bitrow.Row
	width int
}

func newRowsBinarizer(width, height int) *rowsBinarizer {
	rows := make([]*bitrow.Row, height)
	for i := range rows {
		rows[i] = bitrow.NewRow(width)
	}
	return &rowsBinarizer{rows: rows, width: width}
}

// stripe fills a row with alternating single-pixel bars: full of guard
// shapes, none with a quiet zone.
func (b *rowsBinarizer) stripe(y int) {
	for x := 0; x < b.width; x += 2 {
		b.rows[y].Set(x)
	}
}

func (b *rowsBinarizer) put(y int, code []bool) {
	b.rows[y] = rowFromModules(code)
	if b.rows[y].Len() != b.width {
		panic("row width mismatch")
	}
}

func (b *rowsBinarizer) Width() int { return b.width }

func (b *rowsBinarizer) Height() int { return len(b.rows) }

func (b *rowsBinarizer) Source() scanline.LuminanceSource { return nil }

func (b *rowsBinarizer) BlackRow(y int, row *bitrow.Row) (*bitrow.Row, error) {
	if row == nil || row.Len() != b.width {
		row = bitrow.NewRow(b.width)
	} else {
		row.Clear()
	}
	src := b.rows[y]
	for x := src.NextSet(0); x < b.width; x = src.NextSet(x + 1) {
		row.Set(x)
	}
	return row, nil
}

func (b *rowsBinarizer) BlackMatrix() (*bitrow.Matrix, error) {
	m := bitrow.NewMatrix(b.width, len(b.rows))
	for y, src := range b.rows {
		for x := src.NextSet(0); x < b.width; x = src.NextSet(x + 1) {
			m.Set(x, y)
		}
	}
	return m, nil
}

func noisyBitmap(t *testing.T, height, barcodeRow int, code []bool) *scanline.BinaryBitmap {
	t.Helper()
	b := newRowsBinarizer(len(code)+2*testQuiet, height)
	for y := 0; y < height; y++ {
		b.stripe(y)
	}
	b.rows[barcodeRow] = bitrow.NewRow(b.width)
	b.put(barcodeRow, code)
	return scanline.NewBinaryBitmap(b)
}

func TestDecodeRowsFindsIsolatedRow(t *testing.T) {
	code, err := NewEAN13Writer().EncodeContents("5901234123457")
	if err != nil {
		t.Fatalf("EncodeContents: %v", err)
	}
	image := noisyBitmap(t, 100, 37, code)
	dec := NewEAN13Reader()

	// Default sampling steps by height/32 from the middle and never lands
	// on row 37.
	if _, err := DecodeRows(context.Background(), image, dec, nil); !errors.Is(err, scanline.ErrNotFound) {
		t.Fatalf("default sampling error = %v, want ErrNotFound", err)
	}

	opts := &scanline.DecodeOptions{TryHarder: true}
	result, err := DecodeRows(context.Background(), image, dec, opts)
	if err != nil {
		t.Fatalf("TryHarder DecodeRows: %v", err)
	}
	if result.Text != "5901234123457" {
		t.Errorf("text = %q", result.Text)
	}
	if result.RowNumber != 37 {
		t.Errorf("row number = %d, want 37", result.RowNumber)
	}
}

func TestDecodeRowsReportsMostInformativeFailure(t *testing.T) {
	// Structurally valid bars with a broken check digit: the driver must
	// surface the checksum failure, not the NotFound from the noise rows.
	image := noisyBitmap(t, 100, 37, encodeEAN13Raw("5901234123458"))
	opts := &scanline.DecodeOptions{TryHarder: true}
	if _, err := DecodeRows(context.Background(), image, NewEAN13Reader(), opts); !errors.Is(err, scanline.ErrChecksum) {
		t.Errorf("error = %v, want ErrChecksum", err)
	}
}

func TestDecodeRowsReversedScan(t *testing.T) {
	code, err := NewEAN13Writer().EncodeContents("4006381333931")
	if err != nil {
		t.Fatalf("EncodeContents: %v", err)
	}
	b := newRowsBinarizer(len(code)+2*testQuiet, 9)
	reversed := rowFromModules(code)
	reversed.Reverse()
	b.rows[4] = reversed
	image := scanline.NewBinaryBitmap(b)

	result, err := DecodeRows(context.Background(), image, NewEAN13Reader(), nil)
	if err != nil {
		t.Fatalf("DecodeRows: %v", err)
	}
	if result.Text != "4006381333931" {
		t.Errorf("text = %q", result.Text)
	}
	if got := result.Metadata[scanline.MetadataOrientation]; got != 180 {
		t.Errorf("orientation = %v, want 180", got)
	}
	want := scanline.Span{Begin: testQuiet, End: testQuiet + ean13ModuleWidth}
	if result.Span != want {
		t.Errorf("span = %+v, want %+v", result.Span, want)
	}
}

func TestDecodeRowsContextCancel(t *testing.T) {
	code, err := NewEAN13Writer().EncodeContents("5901234123457")
	if err != nil {
		t.Fatalf("EncodeContents: %v", err)
	}
	image := noisyBitmap(t, 100, 37, code)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := DecodeRows(ctx, image, NewEAN13Reader(), nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestMultiReaderPicksSymbology(t *testing.T) {
	cases := []struct {
		name     string
		encode   func() ([]bool, error)
		want     scanline.Format
		wantText string
	}{
		{"ean13", func() ([]bool, error) { return NewEAN13Writer().EncodeContents("5901234123457") }, scanline.FormatEAN13, "5901234123457"},
		{"ean8", func() ([]bool, error) { return NewEAN8Writer().EncodeContents("96385074") }, scanline.FormatEAN8, "96385074"},
		{"upce", func() ([]bool, error) { return NewUPCEWriter().EncodeContents("01234565") }, scanline.FormatUPCE, "01234565"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			code, err := c.encode()
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			result, err := NewMultiReader(nil).DecodeRow(0, rowFromModules(code), nil)
			if err != nil {
				t.Fatalf("DecodeRow: %v", err)
			}
			if result.Format != c.want {
				t.Errorf("format = %v, want %v", result.Format, c.want)
			}
			if result.Text != c.wantText {
				t.Errorf("text = %q, want %q", result.Text, c.wantText)
			}
		})
	}
}

func TestMultiReaderFormatHint(t *testing.T) {
	code, err := NewUPCAWriter().EncodeContents("036000291452")
	if err != nil {
		t.Fatalf("EncodeContents: %v", err)
	}
	row := rowFromModules(code)

	// With no hints EAN-13 wins and reports thirteen digits.
	result, err := NewMultiReader(nil).DecodeRow(0, row, nil)
	if err != nil {
		t.Fatalf("DecodeRow: %v", err)
	}
	if result.Format != scanline.FormatEAN13 || result.Text != "0036000291452" {
		t.Errorf("unhinted = %v %q", result.Format, result.Text)
	}

	// Hinting UPC-A alone yields the twelve-digit reading.
	opts := &scanline.DecodeOptions{PossibleFormats: []scanline.Format{scanline.FormatUPCA}}
	result, err = NewMultiReader(opts).DecodeRow(0, row, opts)
	if err != nil {
		t.Fatalf("hinted DecodeRow: %v", err)
	}
	if result.Format != scanline.FormatUPCA || result.Text != "036000291452" {
		t.Errorf("hinted = %v %q", result.Format, result.Text)
	}
}
