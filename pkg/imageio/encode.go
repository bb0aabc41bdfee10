package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for an output extension with no encoder
var ErrUnsupportedFormat = errors.New("imageio: unsupported image format")

// Encoder writes an image in one file format
type Encoder func(w io.Writer, img image.Image) error

var encoders = map[string]Encoder{
	".ppm":  EncodePPM,
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}

// Formats returns the supported file extensions in sorted order
func Formats() []string {
	exts := make([]string, 0, len(encoders))
	for ext := range encoders {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// EncoderFor returns the encoder for a file path based on its extension
func EncoderFor(path string) (Encoder, error) {
	ext := strings.ToLower(filepath.Ext(path))
	enc, ok := encoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Formats(), ", "))
	}
	return enc, nil
}

// Encode writes img to w in the format named by the extension of path
func Encode(w io.Writer, path string, img image.Image) error {
	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}
	return enc(w, img)
}

// Save writes img to path, choosing the format by extension. The path "-"
// writes PPM to stdout.
func Save(path string, img image.Image) (err error) {
	if path == "-" {
		return EncodePPM(os.Stdout, img)
	}

	enc, err := EncoderFor(path)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := enc(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
