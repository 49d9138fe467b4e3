package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sort"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/binarizer"
	_ "github.com/scanlinehq/scanline/upcean"
)

type scanOptions struct {
	TryHarder  bool
	Pure       bool
	Formats    []string
	Extensions []int
	Workers    int
	MaxWidth   int
}

var scanOpts scanOptions

var scanCmd = &cobra.Command{
	Use:   "scan <image-file> [image-file...]",
	Short: "Decode barcodes from image files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context(), args)
	},
}

func init() {
	scanCmd.Flags().BoolVar(&scanOpts.TryHarder, "try-harder", false, "sample more rows at the cost of latency")
	scanCmd.Flags().BoolVar(&scanOpts.Pure, "pure", false, "hint that images are clean barcode renders with minimal border")
	scanCmd.Flags().StringSliceVar(&scanOpts.Formats, "format", nil, "restrict to formats (ean13, ean8, upca, upce)")
	scanCmd.Flags().IntSliceVar(&scanOpts.Extensions, "extensions", nil, "require an EAN add-on of the given lengths (2, 5)")
	scanCmd.Flags().IntVarP(&scanOpts.Workers, "workers", "w", 4, "parallel decode workers")
	scanCmd.Flags().IntVar(&scanOpts.MaxWidth, "max-width", 4096, "downscale wider images before decoding (0 disables)")
	rootCmd.AddCommand(scanCmd)
}

type scanOutcome struct {
	path   string
	result *scanline.Result
	err    error
}

func runScan(ctx context.Context, paths []string) error {
	opts, err := decodeOptions(scanOpts.TryHarder, scanOpts.Pure, scanOpts.Formats, scanOpts.Extensions)
	if err != nil {
		return err
	}

	workers := scanOpts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	bar := progressbar.NewOptions(len(paths),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
	)

	tasks := make(chan string)
	outcomes := make(chan scanOutcome)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range tasks {
				result, err := scanFile(ctx, path, opts)
				outcomes <- scanOutcome{path: path, result: result, err: err}
			}
		}()
	}
	go func() {
		defer close(tasks)
		for _, path := range paths {
			select {
			case tasks <- path:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(outcomes)
	}()

	collected := make([]scanOutcome, 0, len(paths))
	for outcome := range outcomes {
		bar.Add(1)
		collected = append(collected, outcome)
	}
	fmt.Fprintln(os.Stderr)
	sort.Slice(collected, func(i, j int) bool { return collected[i].path < collected[j].path })

	failed := 0
	for _, o := range collected {
		if o.err != nil {
			failed++
			logrus.WithError(o.err).WithField("path", o.path).Warn("decode failed")
			fmt.Fprintf(os.Stderr, "%s: %v\n", o.path, o.err)
			continue
		}
		fmt.Printf("%s: [%s] %s (row %d, cols %d-%d)\n",
			o.path, o.result.Format, o.result.Text,
			o.result.RowNumber, o.result.Span.Begin, o.result.Span.End)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed to decode", failed, len(collected))
	}
	return nil
}

func decodeOptions(tryHarder, pure bool, formatNames []string, extensions []int) (*scanline.DecodeOptions, error) {
	opts := &scanline.DecodeOptions{
		TryHarder:         tryHarder,
		PureBarcode:       pure,
		AllowedExtensions: extensions,
	}
	for _, name := range formatNames {
		f, err := scanline.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		opts.PossibleFormats = append(opts.PossibleFormats, f)
	}
	return opts, nil
}

func loadImage(path string, maxWidth int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if maxWidth > 0 && img.Bounds().Dx() > maxWidth {
		// A scan row only needs enough resolution to keep modules >1px;
		// oversized photos just slow binarization down.
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	}
	return img, nil
}

// scanFile decodes one image, trying the fast global-histogram binarizer
// first and falling back to hybrid local thresholding for photographs
// with uneven lighting.
func scanFile(ctx context.Context, path string, opts *scanline.DecodeOptions) (*scanline.Result, error) {
	img, err := loadImage(path, scanOpts.MaxWidth)
	if err != nil {
		return nil, err
	}
	source := scanline.NewImageSource(img)

	bitmaps := []*scanline.BinaryBitmap{
		scanline.NewBinaryBitmap(binarizer.NewGlobalHistogram(source)),
		scanline.NewBinaryBitmap(binarizer.NewHybrid(source)),
	}
	bestErr := error(scanline.ErrNotFound)
	for _, bitmap := range bitmaps {
		result, err := scanline.Decode(ctx, bitmap, opts)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		bestErr = scanline.PreferredFailure(bestErr, err)
	}
	return nil, bestErr
}
