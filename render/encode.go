package render

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/binvis/bytestats"
)

// ErrUnsupportedFormat is returned for file extensions with no encoder.
var ErrUnsupportedFormat = errors.New("render: unsupported format")

// Format is an output image file format.
type Format uint8

const (
	// FormatPNG is lossless PNG.
	FormatPNG Format = iota

	// FormatBMP is uncompressed BMP.
	FormatBMP

	// FormatTIFF is deflate-compressed TIFF.
	FormatTIFF

	formatCount
)

// FormatInfo describes an output format.
type FormatInfo struct {
	Name       string
	Extensions []string
	encode     func(io.Writer, image.Image) error
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatPNG: {
		Name:       "png",
		Extensions: []string{".png"},
		encode: func(w io.Writer, img image.Image) error {
			enc := png.Encoder{CompressionLevel: png.BestSpeed}
			return enc.Encode(w, img)
		},
	},
	FormatBMP: {
		Name:       "bmp",
		Extensions: []string{".bmp"},
		encode:     bmp.Encode,
	},
	FormatTIFF: {
		Name:       "tiff",
		Extensions: []string{".tif", ".tiff"},
		encode: func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		},
	},
}

// Info returns metadata about the format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// String returns the format name.
func (f Format) String() string {
	if f >= formatCount {
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
	return formatInfoTable[f].Name
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for f := range formatCount {
		if slices.Contains(formatInfoTable[f].Extensions, ext) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	if f >= formatCount {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
	if err := formatInfoTable[f].encode(w, img); err != nil {
		return fmt.Errorf("render: encode %s: %w", f, err)
	}
	return nil
}

// Save writes img to path, choosing the encoder from the extension.
func Save(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("render: create file: %w", err)
	}
	if err := Encode(out, img, f); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("render: close file: %w", err)
	}

	b := img.Bounds()
	bytestats.Logger().Debug("render: saved", "path", path, "format", f, "width", b.Dx(), "height", b.Dy())
	return nil
}
