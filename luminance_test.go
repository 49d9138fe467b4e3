package scanline

import (
	"image"
	"image/color"
	"testing"

	"github.com/scanlinehq/scanline/bitrow"
)

func TestNewImageSourceLuma(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.NRGBA{A: 255}) // black
	img.Set(2, 0, color.NRGBA{})       // fully transparent

	s := NewImageSource(img)
	row := s.Row(0, nil)
	if row[0] != 0xFF {
		t.Errorf("white pixel luma = %d, want 255", row[0])
	}
	if row[1] != 0 {
		t.Errorf("black pixel luma = %d, want 0", row[1])
	}
	if row[2] != 0xFF {
		t.Errorf("transparent pixel luma = %d, want 255", row[2])
	}
}

func TestGraySourceFastPath(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(2, 1, color.Gray{Y: 37})
	s := NewImageSource(img)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("dimensions = %dx%d", s.Width(), s.Height())
	}
	if s.Row(1, nil)[2] != 37 {
		t.Error("gray pixel not carried through")
	}
}

func TestRotateCCW(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(2, 0, color.Gray{Y: 9})
	r := NewImageSource(img).RotateCCW()
	if r.Width() != 2 || r.Height() != 3 {
		t.Fatalf("rotated dimensions = %dx%d, want 2x3", r.Width(), r.Height())
	}
	// (x, y) maps to (y, width-1-x).
	if r.Row(0, nil)[0] != 9 {
		t.Error("pixel not where rotation should place it")
	}
}

func TestMatrixImage(t *testing.T) {
	m := bitrow.NewMatrix(4, 2)
	m.Set(1, 0)
	img := MatrixImage(m)
	if img.GrayAt(1, 0).Y != 0 {
		t.Error("set bit should render black")
	}
	if img.GrayAt(0, 0).Y != 255 {
		t.Error("clear bit should render white")
	}
}
