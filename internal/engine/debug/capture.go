package debug

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/image/bmp"
)

// Format is an image file format for captures.
type Format string

const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat validates a capture format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatBMP:
		return f, nil
	case "":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unknown capture format %q", s)
	}
}

// Capture writes view textures and screenshots to image files.
type Capture struct {
	outputDir string
	format    Format
	now       func() time.Time
}

// NewCapture creates a capture handler writing into outputDir.
func NewCapture(outputDir string, format Format) *Capture {
	return &Capture{
		outputDir: outputDir,
		format:    format,
		now:       time.Now,
	}
}

// Filename returns the path a capture named label would be written to.
func (c *Capture) Filename(label string) string {
	timestamp := c.now().Format("2006-01-02_15-04-05.000")
	name := fmt.Sprintf("%s_%s.%s", label, timestamp, c.format)
	if c.outputDir != "" {
		name = filepath.Join(c.outputDir, name)
	}
	return name
}

// SavePixels writes top-down RGBA pixels to a new file and returns its path.
func (c *Capture) SavePixels(label string, pixels []byte, width, height int) (string, error) {
	img, err := ImageFromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.SaveImage(label, img)
}

// SaveImage writes img to a new file and returns its path.
func (c *Capture) SaveImage(label string, img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := c.Filename(label)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := c.encode(file, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return filename, nil
}

func (c *Capture) encode(w io.Writer, img image.Image) error {
	if c.format == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

// ImageFromPixels wraps top-down RGBA pixels in an image.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pixels)
	return img, nil
}
