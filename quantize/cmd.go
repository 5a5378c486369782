// Package quantize implements the batch colour quantization command.
package quantize

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"kmquant/kmeans"
	"kmquant/palette"
	"kmquant/parallel"
	"kmquant/pixels"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan      string `help:"Source folder to scan" default:"."`
	Dest      string `help:"Destination folder for quantized pictures. Relative to scan dir if not absolute." default:"quantized"`
	K         int    `short:"k" help:"Number of colors to reduce each picture to" default:"16"`
	Rounds    int    `help:"Number of clustering rounds" default:"100"`
	Seed      uint64 `help:"Random seed for centroid placement, 0 picks one per run"`
	AllPixels bool   `help:"Fit on every pixel instead of on the distinct colors" default:"false"`
	Pal       bool   `help:"Also write the resulting palette as a RIFF PAL file" default:"false"`
	Format    string `help:"Output format of quantized image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}

	switch {
	case c.K < 1:
		return fmt.Errorf("invalid number of colors: %d", c.K)
	case c.Rounds < 1:
		return fmt.Errorf("invalid number of rounds: %d", c.Rounds)
	case strings.HasSuffix(c.Format, "gif") && c.K > maxGIFColors:
		return fmt.Errorf("GIF output supports at most %d colors, got %d", maxGIFColors, c.K)
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	slog.Info("quantizing", "dir", c.Scan, "k", c.K, "rounds", c.Rounds, "seed", seed)

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func(ctx context.Context) error {
			filePath := filepath.Join(c.Scan, file.Name())
			logger := slog.Default().With("file", filePath)

			if err := c.process(ctx, logger, file.Name(), seed); err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				errCount.Add(1)
				logger.Error("could not quantize image", "error", err)
				return nil
			}
			processedCount.Add(1)
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return err
	}

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

// process quantizes a single file. ctx is checked between stages; a fit that
// has started always runs all of its rounds.
func (c *CLICmd) process(ctx context.Context, logger *slog.Logger, fileName string, seed uint64) error {
	imgFile, err := os.Open(filepath.Join(c.Scan, fileName))
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	res, err := pixels.Quantize(img, c.K,
		pixels.WithAllPixels(c.AllPixels),
		pixels.WithFitOptions(
			kmeans.WithRounds(c.Rounds),
			kmeans.WithSeed(seed),
			kmeans.WithLogger(logger),
		),
	)
	if err != nil {
		return err
	}

	pal := palette.FromModel(res.Model)
	logger.Info("quantized", "pixels", res.Pixels, "unique", res.Unique, "elapsed", res.Elapsed,
		"colors", len(pal), "empty", len(res.Model.Empty()), "palette", palette.HexList(pal))
	if err := ctx.Err(); err != nil {
		return err
	}

	destDir := filepath.Join(c.Dest, fileName)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", destDir, err)
	}

	baseName := fmt.Sprintf("%03d", c.K)
	if err := save(res.Image, pal, imgType, c.Format, destDir, baseName); err != nil {
		return fmt.Errorf("could not save image in %q: %w", destDir, err)
	}

	if c.Pal {
		if err := savePalette(pal, destDir, baseName+".pal"); err != nil {
			return fmt.Errorf("could not save palette in %q: %w", destDir, err)
		}
	}
	return nil
}
