package output

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an image file format
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// DefaultDir is where images go when no output path is given
const DefaultDir = "output"

// ParseFormat accepts "ppm" or "png" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want ppm or png)", s)
	}
}

// DefaultPath returns output/image.<format>
func DefaultPath(format Format) string {
	return filepath.Join(DefaultDir, "image."+string(format))
}

// EncodePPM writes img as a binary PPM (P6): a "P6\n<w> <h>\n255\n" header
// followed by raw RGB triples, top row first
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	// Fast path for the renderer's own framebuffer
	rgba, isRGBA := img.(*image.RGBA)

	pixel := make([]byte, 3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if isRGBA {
				c := rgba.RGBAAt(x, y)
				pixel[0], pixel[1], pixel[2] = c.R, c.G, c.B
			} else {
				r, g, b, _ := img.At(x, y).RGBA()
				pixel[0], pixel[1], pixel[2] = uint8(r>>8), uint8(g>>8), uint8(b>>8)
			}
			if _, err := bw.Write(pixel); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// EncodePNG writes img as PNG
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPPM:
		return EncodePPM(w, img)
	case FormatPNG:
		return EncodePNG(w, img)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile encodes img to path, creating parent directories as needed
func WriteFile(path string, format Format, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		return fmt.Errorf("error encoding %s: %w", format, err)
	}

	return file.Close()
}
