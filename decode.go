package scanline

import (
	"context"
	"errors"
)

// Reader decodes barcodes from a BinaryBitmap. Implementations check ctx
// between row attempts; a single row decode is not interruptible.
type Reader interface {
	Decode(ctx context.Context, image *BinaryBitmap, opts *DecodeOptions) (*Result, error)
}

// readerFactory builds a Reader for the given options. Symbology packages
// register themselves from an init function.
type readerFactory func(opts *DecodeOptions) Reader

var readerFactories []readerFactory

// RegisterReader adds a reader factory to the front door. Called from
// init() in symbology packages.
func RegisterReader(factory readerFactory) {
	readerFactories = append(readerFactories, factory)
}

// Decode attempts to decode a barcode from the image using every
// registered reader. It returns the first success, or the most
// informative failure seen: a Checksum or Format error (a barcode-shaped
// pattern was found) in preference to NotFound.
func Decode(ctx context.Context, image *BinaryBitmap, opts *DecodeOptions) (*Result, error) {
	bestErr := error(ErrNotFound)
	for _, factory := range readerFactories {
		result, err := factory(opts).Decode(ctx, image, opts)
		if err == nil {
			return result, nil
		}
		bestErr = PreferredFailure(bestErr, err)
		if ctx != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, bestErr
}

// failureRank orders failures by how much they say about the image.
func failureRank(err error) int {
	switch {
	case errors.Is(err, ErrChecksum):
		return 2
	case errors.Is(err, ErrFormat):
		return 1
	default:
		return 0
	}
}

// PreferredFailure returns whichever of the two failures is more
// informative to a caller deciding whether a barcode was present at all.
func PreferredFailure(a, b error) error {
	if b == nil {
		return a
	}
	if a == nil || failureRank(b) > failureRank(a) {
		return b
	}
	return a
}
