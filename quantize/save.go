package quantize

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"kmquant/palette"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// outputType resolves the --format flag against the decoded source type.
// webp can only be decoded, so "same" falls back to png for it.
func outputType(imgType, format string) string {
	outType, unsupOnly := strings.CutPrefix(format, "unsup:")
	if (unsupOnly && (imgType != "webp")) || (outType == "same") {
		outType = imgType
	}
	if outType == "webp" {
		outType = "png"
	}
	return outType
}

const maxGIFColors = 256

// paletted maps img onto pal without dithering. Pixels already holding a
// palette colour keep it exactly.
func paletted(img image.Image, pal color.Palette) (*image.Paletted, error) {
	if p, ok := img.(*image.Paletted); ok {
		return p, nil
	}
	if len(pal) == 0 || len(pal) > maxGIFColors {
		return nil, fmt.Errorf("GIF palette needs 1 to %d colors, got %d", maxGIFColors, len(pal))
	}

	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)
	draw.Draw(dest, dr, img, sr.Min, draw.Src)
	return dest, nil
}

// save encodes img in the resolved output format. pal holds the colours img
// was quantized to and is used as the GIF palette.
func save(img image.Image, pal color.Palette, imgType, format, destDir, baseName string) error {
	outType := outputType(imgType, format)
	destName := fmt.Sprintf("%s.%s", baseName, outType)

	if outType == "gif" {
		p, err := paletted(img, pal)
		if err != nil {
			return err
		}
		img = p
	}

	return writeAtomic(destDir, destName, func(w io.Writer) error {
		switch outType {
		case "gif":
			p := img.(*image.Paletted)
			return gif.Encode(w, p, &gif.Options{NumColors: len(p.Palette)})
		case "jpeg":
			return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
		case "png":
			enc := png.Encoder{
				CompressionLevel: png.BestCompression,
				BufferPool:       pngPool,
			}
			return enc.Encode(w, img)
		case "bmp":
			return bmp.Encode(w, img)
		case "tiff":
			return tiff.Encode(w, img, nil)
		default:
			return fmt.Errorf("unsupported output format: %s", outType)
		}
	})
}

func savePalette(pal color.Palette, destDir, destName string) error {
	return writeAtomic(destDir, destName, func(w io.Writer) error {
		_, err := palette.WriteTo(w, []color.Palette{pal})
		return err
	})
}

// writeAtomic writes through a temporary file in destDir and renames it to
// destName only once encode succeeded.
func writeAtomic(destDir, destName string, encode func(io.Writer) error) (err error) {
	outFile, err := os.CreateTemp(destDir, destName+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary destination %q: %w", destName, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", destName, defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", destName, defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), filepath.Join(destDir, destName)); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", destName, defErr)
			}
		}
		if err != nil {
			_ = os.Remove(outFile.Name())
		}
	}()

	if err = encode(outFile); err != nil {
		return fmt.Errorf("could not encode %q: %w", destName, err)
	}

	canRename = true
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
