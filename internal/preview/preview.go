// Package preview draws card thumbnails as ANSI half-block art.
package preview

import (
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"

	"github.com/arcanaland/shufflegrid/internal/card"
)

// maxImageBytes bounds how much of a remote image is read
const maxImageBytes = 8 << 20

// Thumbnailer renders card images, caching the ANSI output on disk
type Thumbnailer struct {
	Width    int
	Height   int
	CacheDir string
	Client   *http.Client
}

// Thumbnail returns ANSI art for c. Cards without an image, or whose image
// cannot be loaded, get their accent gradient instead. The error reports
// why the image was not used; the art is always usable.
func (t Thumbnailer) Thumbnail(ctx context.Context, c card.Card) (string, error) {
	from, to := c.Accents()
	if c.Image == "" {
		return Gradient(from, to, t.Width, t.Height), nil
	}

	art, err := t.imageArt(ctx, c.Image)
	if err != nil {
		return Gradient(from, to, t.Width, t.Height), err
	}
	return art, nil
}

func (t Thumbnailer) imageArt(ctx context.Context, src string) (string, error) {
	var cachePath string
	if t.CacheDir != "" {
		cachePath = filepath.Join(t.CacheDir, fmt.Sprintf("%x-%dx%d.ansi", md5.Sum([]byte(src)), t.Width, t.Height))
		if data, err := os.ReadFile(cachePath); err == nil {
			return string(data), nil
		}
	}

	img, err := t.load(ctx, src)
	if err != nil {
		return "", err
	}

	art, err := ImageToAnsi(img, t.Width, t.Height)
	if err != nil {
		return "", err
	}

	if cachePath != "" {
		if err := os.MkdirAll(t.CacheDir, 0755); err == nil {
			_ = os.WriteFile(cachePath, []byte(art), 0644)
		}
	}
	return art, nil
}

func (t Thumbnailer) load(ctx context.Context, src string) (image.Image, error) {
	var r io.Reader
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := t.Client
		if client == nil {
			client = http.DefaultClient
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("failed to fetch image: %s", resp.Status)
		}
		r = io.LimitReader(resp.Body, maxImageBytes)
	} else {
		file, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %v", err)
		}
		defer file.Close()
		r = file
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %v", err)
	}
	return img, nil
}

// ImageToAnsi converts an image to width x height cells of ANSI art
func ImageToAnsi(img image.Image, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid thumbnail size %dx%d", width, height)
	}

	// Each cell covers a 2x2 block of pixels
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			c1, _ := colorful.MakeColor(getColorAt(resized, x, y))
			c2, _ := colorful.MakeColor(getColorAt(resized, x+1, y))
			c3, _ := colorful.MakeColor(getColorAt(resized, x, y+1))
			c4, _ := colorful.MakeColor(getColorAt(resized, x+1, y+1))

			// Top pixels as foreground, bottom pixels as background
			buffer.WriteString(halfBlock(averageColor(c1, c2), averageColor(c3, c4)))
		}
		buffer.WriteString("\n")
	}

	return buffer.String(), nil
}

// Gradient draws a diagonal blend between two accent colors, the terminal
// stand-in for a missing image
func Gradient(from, to string, width, height int) string {
	a, err := card.ParseColor(from)
	if err != nil {
		a, _ = colorful.Hex("#8b5cf6")
	}
	b, err := card.ParseColor(to)
	if err != nil {
		b, _ = colorful.Hex("#6366f1")
	}

	var buffer strings.Builder
	span := float64(width + height*2)
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width; x++ {
			top := a.BlendLab(b, float64(x+y)/span).Clamped()
			bottom := a.BlendLab(b, float64(x+y+1)/span).Clamped()
			buffer.WriteString(halfBlock(top, bottom))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// getColorAt returns the color at a specific coordinate
func getColorAt(img image.Image, x, y int) color.Color {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		return img.At(x, y)
	}
	return color.RGBA{0, 0, 0, 255}
}

// averageColor calculates the average of multiple colors
func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	count := float64(len(colors))
	return colorful.Color{R: r / count, G: g / count, B: b / count}
}

// halfBlock formats an upper half block with 24-bit colors
func halfBlock(fg, bg colorful.Color) string {
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", r1, g1, b1, r2, g2, b2)
}

// StripAnsi removes ANSI escape sequences from a string
func StripAnsi(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		if inEscape {
			if c == 'm' {
				inEscape = false
			}
		} else if c == '\033' {
			inEscape = true
		} else {
			result.WriteRune(c)
		}
	}
	return result.String()
}
