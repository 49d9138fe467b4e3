package upcean

import scanline "github.com/scanlinehq/scanline"

func init() {
	scanline.RegisterReader(func(opts *scanline.DecodeOptions) scanline.Reader {
		return NewMultiReader(opts)
	})
}
