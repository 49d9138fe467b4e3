package scanline

// DecodeOptions carries decode hints. A nil *DecodeOptions is a fully
// supported default: all formats, normal sampling density. The core passes
// options through unmodified; it never mutates them.
type DecodeOptions struct {
	// TryHarder samples more rows, more densely, at the cost of latency.
	TryHarder bool

	// PureBarcode hints that the image is a clean, axis-aligned render of
	// a single barcode with minimal border.
	PureBarcode bool

	// PossibleFormats restricts decoding to the listed symbologies.
	// Empty means all.
	PossibleFormats []Format

	// AllowedExtensions restricts the accepted EAN add-on lengths (2, 5).
	// When set, a main symbol without a matching add-on is rejected.
	// Empty means add-ons are decoded when present but never required.
	AllowedExtensions []int
}

// AllowsFormat reports whether the options permit the given format.
func (o *DecodeOptions) AllowsFormat(f Format) bool {
	if o == nil || len(o.PossibleFormats) == 0 {
		return true
	}
	for _, pf := range o.PossibleFormats {
		if pf == f {
			return true
		}
	}
	return false
}
