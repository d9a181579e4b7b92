// Package render turns brightness rasters into image files and screen pixels.
package render

import (
	"bufio"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"crystal-ca/internal/core"
)

// ErrUnknownFormat is returned for output paths without a supported extension.
var ErrUnknownFormat = errors.New("unknown image format")

// Format identifies an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
	// FormatPGM is the plain (ASCII) portable graymap.
	FormatPGM Format = "pgm"
)

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	case ".pgm":
		return FormatPGM, nil
	}
	return "", fmt.Errorf("%w: %q (want .png, .bmp, .tif, .tiff or .pgm)", ErrUnknownFormat, path)
}

// Encode writes r to w as a grayscale image.
func Encode(w io.Writer, r *core.Raster, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, r.Gray())
	case FormatBMP:
		return bmp.Encode(w, r.Gray())
	case FormatTIFF:
		return tiff.Encode(w, r.Gray(), &tiff.Options{Compression: tiff.Deflate})
	case FormatPGM:
		return encodePGM(w, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Save encodes r into path, choosing the format from the extension. The image
// is written to a temporary file first so a failed encode never leaves a
// truncated image behind.
func Save(path string, r *core.Raster) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".crystal-*")
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, r, f); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

func encodePGM(w io.Writer, r *core.Raster) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P2\n%d %d\n255\n", r.W, r.H)
	cells := r.Cells()
	for y := 0; y < r.H; y++ {
		row := cells[y*r.W : (y+1)*r.W]
		for x, v := range row {
			if x > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(strconv.Itoa(int(v)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
