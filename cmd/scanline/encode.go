package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/bitrow"
	"github.com/scanlinehq/scanline/upcean"
)

type encodeOptions struct {
	Format string
	Width  int
	Height int
	Out    string
}

var encodeOpts encodeOptions

var encodeCmd = &cobra.Command{
	Use:   "encode <digits>",
	Short: "Render a UPC/EAN barcode as a PNG",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncode(args[0])
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOpts.Format, "format", "f", "ean13", "symbology (ean13, ean8, upca, upce)")
	encodeCmd.Flags().IntVar(&encodeOpts.Width, "width", 300, "minimum output width in pixels")
	encodeCmd.Flags().IntVar(&encodeOpts.Height, "height", 100, "output height in pixels")
	encodeCmd.Flags().StringVarP(&encodeOpts.Out, "out", "o", "barcode.png", "output file")
	rootCmd.AddCommand(encodeCmd)
}

type writer interface {
	Encode(contents string, width, height int) (*bitrow.Matrix, error)
}

func runEncode(contents string) error {
	format, err := scanline.ParseFormat(encodeOpts.Format)
	if err != nil {
		return err
	}
	var w writer
	switch format {
	case scanline.FormatEAN13:
		w = upcean.NewEAN13Writer()
	case scanline.FormatEAN8:
		w = upcean.NewEAN8Writer()
	case scanline.FormatUPCA:
		w = upcean.NewUPCAWriter()
	case scanline.FormatUPCE:
		w = upcean.NewUPCEWriter()
	default:
		return fmt.Errorf("format %s cannot be encoded", format)
	}

	matrix, err := w.Encode(contents, encodeOpts.Width, encodeOpts.Height)
	if err != nil {
		return err
	}

	f, err := os.Create(encodeOpts.Out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, scanline.MatrixImage(matrix)); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d)\n", encodeOpts.Out, matrix.Width(), matrix.Height())
	return nil
}
