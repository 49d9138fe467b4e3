package main

import (
	"context"
	"errors"
	"image"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	scanline "github.com/scanlinehq/scanline"
	"github.com/scanlinehq/scanline/binarizer"
)

type serveOptions struct {
	Addr          string
	DecodeTimeout time.Duration
}

var serveOpts serveOptions

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve barcode decoding over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func init() {
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", envOr("SCANLINE_ADDR", ":8080"), "listen address")
	serveCmd.Flags().DurationVar(&serveOpts.DecodeTimeout, "decode-timeout", 10*time.Second, "per-request decode deadline")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	router := newRouter()

	srv := &http.Server{
		Addr:         serveOpts.Addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", serveOpts.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/decode", handleDecode)
	return router
}

type decodeResponse struct {
	Text      string `json:"text"`
	Format    string `json:"format"`
	RowNumber int    `json:"row_number"`
	Begin     int    `json:"begin"`
	End       int    `json:"end"`
	Extension string `json:"extension,omitempty"`
}

// handleDecode accepts a multipart upload under the "image" field and
// responds with the decoded digit string. Decode failures distinguish a
// missing barcode (404) from a barcode that was found but failed
// structural or checksum validation (422).
func handleDecode(c *gin.Context) {
	file, _, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing image field"})
		return
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
		return
	}

	opts := &scanline.DecodeOptions{TryHarder: c.Query("try_harder") == "true"}
	for _, name := range c.QueryArray("format") {
		f, err := scanline.ParseFormat(name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		opts.PossibleFormats = append(opts.PossibleFormats, f)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), serveOpts.DecodeTimeout)
	defer cancel()

	source := scanline.NewImageSource(img)
	bestErr := error(scanline.ErrNotFound)
	for _, b := range []scanline.Binarizer{
		binarizer.NewGlobalHistogram(source),
		binarizer.NewHybrid(source),
	} {
		result, err := scanline.Decode(ctx, scanline.NewBinaryBitmap(b), opts)
		if err == nil {
			resp := decodeResponse{
				Text:      result.Text,
				Format:    result.Format.String(),
				RowNumber: result.RowNumber,
				Begin:     result.Span.Begin,
				End:       result.Span.End,
			}
			if ext, ok := result.Metadata[scanline.MetadataExtension].(string); ok {
				resp.Extension = ext
			}
			c.JSON(http.StatusOK, resp)
			return
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			c.JSON(http.StatusGatewayTimeout, gin.H{"error": "decode timed out"})
			return
		}
		bestErr = scanline.PreferredFailure(bestErr, err)
	}

	status := http.StatusNotFound
	if errors.Is(bestErr, scanline.ErrChecksum) || errors.Is(bestErr, scanline.ErrFormat) {
		status = http.StatusUnprocessableEntity
	}
	logrus.WithError(bestErr).Debug("decode failed")
	c.JSON(status, gin.H{"error": bestErr.Error()})
}
