package binarizer

import (
	"errors"
	"image"
	"image/color"
	"testing"

	scanline "github.com/scanlinehq/scanline"
)

// barImage draws dark vertical bars on a light background.
func barImage(width, height int, dark, light uint8, bars ...[2]int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{Y: light})
		}
	}
	for _, b := range bars {
		for x := b[0]; x < b[1]; x++ {
			for y := 0; y < height; y++ {
				img.SetGray(x, y, color.Gray{Y: dark})
			}
		}
	}
	return img
}

func TestGlobalHistogramBlackRow(t *testing.T) {
	img := barImage(64, 4, 20, 220, [2]int{20, 28}, [2]int{40, 44})
	b := NewGlobalHistogram(scanline.NewImageSource(img))

	row, err := b.BlackRow(1, nil)
	if err != nil {
		t.Fatalf("BlackRow: %v", err)
	}
	// Interior of each bar must be black, background well away from edges
	// must be white. Pixels at bar edges may go either way under the
	// sharpening kernel.
	for _, x := range []int{22, 25, 41, 42} {
		if !row.Get(x) {
			t.Errorf("bar pixel %d not black", x)
		}
	}
	for _, x := range []int{5, 33, 55} {
		if row.Get(x) {
			t.Errorf("background pixel %d not white", x)
		}
	}
}

func TestGlobalHistogramUniformRow(t *testing.T) {
	// A flat near-black row has no valley between histogram peaks.
	img := barImage(64, 4, 0, 10) // no bars, uniform dark
	b := NewGlobalHistogram(scanline.NewImageSource(img))
	if _, err := b.BlackRow(0, nil); !errors.Is(err, scanline.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestGlobalHistogramBlackMatrix(t *testing.T) {
	img := barImage(100, 50, 30, 230, [2]int{30, 40})
	b := NewGlobalHistogram(scanline.NewImageSource(img))
	m, err := b.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	if !m.Get(35, 25) {
		t.Error("bar interior not black")
	}
	if m.Get(70, 25) {
		t.Error("background not white")
	}
}

func TestHybridSmallImageFallsBack(t *testing.T) {
	img := barImage(30, 30, 30, 230, [2]int{10, 14})
	b := NewHybrid(scanline.NewImageSource(img))
	m, err := b.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	if !m.Get(12, 15) || m.Get(25, 15) {
		t.Error("small-image fallback binarized incorrectly")
	}
}

func TestHybridBlackMatrix(t *testing.T) {
	img := barImage(120, 60, 30, 230, [2]int{40, 50}, [2]int{60, 64})
	b := NewHybrid(scanline.NewImageSource(img))
	m, err := b.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	for _, x := range []int{42, 47, 61} {
		if !m.Get(x, 30) {
			t.Errorf("bar pixel %d not black", x)
		}
	}
	for _, x := range []int{10, 55, 100} {
		if m.Get(x, 30) {
			t.Errorf("background pixel %d not white", x)
		}
	}

	// Cached matrix is returned on the second call.
	again, err := b.BlackMatrix()
	if err != nil {
		t.Fatalf("second BlackMatrix: %v", err)
	}
	if again != m {
		t.Error("matrix not cached")
	}
}

func TestHybridGradientBackground(t *testing.T) {
	// A left-to-right gradient defeats a single global threshold; local
	// blocks must still separate the bars.
	img := image.NewGray(image.Rect(0, 0, 160, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 160; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(100 + x/2)})
		}
	}
	for x := 20; x < 26; x++ {
		for y := 0; y < 60; y++ {
			img.SetGray(x, y, color.Gray{Y: 10})
		}
	}
	for x := 130; x < 136; x++ {
		for y := 0; y < 60; y++ {
			img.SetGray(x, y, color.Gray{Y: 60})
		}
	}

	b := NewHybrid(scanline.NewImageSource(img))
	m, err := b.BlackMatrix()
	if err != nil {
		t.Fatalf("BlackMatrix: %v", err)
	}
	if !m.Get(22, 30) {
		t.Error("dark bar on light end not black")
	}
	if !m.Get(132, 30) {
		t.Error("mid-gray bar on bright end not black")
	}
	if m.Get(80, 30) {
		t.Error("gradient background misread as black")
	}
}
