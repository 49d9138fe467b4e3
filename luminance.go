package scanline

import (
	"image"
	"image/color"

	"github.com/scanlinehq/scanline/bitrow"
)

// LuminanceSource provides greyscale luminance values for an image.
// Implementations are read-only during a decode.
type LuminanceSource interface {
	// Row returns one row of luminance data. If row is non-nil and large
	// enough it is reused.
	Row(y int, row []byte) []byte

	// Matrix returns the entire luminance matrix in row-major order.
	Matrix() []byte

	// Width returns the image width in pixels.
	Width() int

	// Height returns the image height in pixels.
	Height() int
}

// ImageSource adapts an image.Image into a LuminanceSource, converting
// each pixel to greyscale up front.
type ImageSource struct {
	lum    []byte
	width  int
	height int
}

// NewImageSource converts img to luminance values using the coefficients
// (306*R + 601*G + 117*B + 0x200) >> 10 on 8-bit components. Fully
// transparent pixels are forced to white so barcodes on transparent
// backgrounds keep their quiet zones.
func NewImageSource(img image.Image) *ImageSource {
	if g, ok := img.(*image.Gray); ok {
		return NewGraySource(g)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			if a == 0 {
				lum[y*w+x] = 0xFF
				continue
			}
			lum[y*w+x] = byte((306*(r>>8) + 601*(g>>8) + 117*(b>>8) + 0x200) >> 10)
		}
	}
	return &ImageSource{lum: lum, width: w, height: h}
}

// NewGraySource wraps a *image.Gray without per-pixel conversion.
func NewGraySource(img *image.Gray) *ImageSource {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	lum := make([]byte, w*h)
	if img.Stride == w && bounds.Min.X == 0 && bounds.Min.Y == 0 {
		copy(lum, img.Pix[:w*h])
	} else {
		for y := 0; y < h; y++ {
			off := (bounds.Min.Y+y)*img.Stride + bounds.Min.X
			copy(lum[y*w:], img.Pix[off:off+w])
		}
	}
	return &ImageSource{lum: lum, width: w, height: h}
}

// Row returns one row of luminance data.
func (s *ImageSource) Row(y int, row []byte) []byte {
	if y < 0 || y >= s.height {
		return nil
	}
	if len(row) < s.width {
		row = make([]byte, s.width)
	}
	copy(row, s.lum[y*s.width:(y+1)*s.width])
	return row
}

// Matrix returns a copy of the full luminance matrix.
func (s *ImageSource) Matrix() []byte {
	out := make([]byte, len(s.lum))
	copy(out, s.lum)
	return out
}

// Width returns the image width.
func (s *ImageSource) Width() int { return s.width }

// Height returns the image height.
func (s *ImageSource) Height() int { return s.height }

// MatrixImage renders a bit matrix as a grayscale image, black pixels
// for set bits. Used to rasterize encoder output.
func MatrixImage(m *bitrow.Matrix) *image.Gray {
	w, h := m.Width(), m.Height()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// RotateCCW returns a copy rotated 90 degrees counterclockwise, for
// scanning barcodes printed vertically.
func (s *ImageSource) RotateCCW() *ImageSource {
	w, h := s.height, s.width
	lum := make([]byte, w*h)
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			lum[(s.width-1-x)*w+y] = s.lum[y*s.width+x]
		}
	}
	return &ImageSource{lum: lum, width: w, height: h}
}
