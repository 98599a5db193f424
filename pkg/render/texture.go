package render

import (
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Sampler is a read-only texture handed to a fill call for its duration.
// At is only called with 0 <= x < w and 0 <= y < h.
type Sampler interface {
	Size() (w, h int)
	At(x, y int) Color
}

// Texture holds an RGBA8 image for texture mapping.
type Texture struct {
	Width  int
	Height int
	Pix    []byte // Row-major RGBA8, origin top-left
}

// NewTexture creates a transparent texture with the given dimensions.
func NewTexture(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// LoadTexture decodes a PNG, JPEG, BMP or WebP file. Images larger than
// maxSize on either side are scaled down with nearest-neighbour sampling
// keeping their aspect ratio; maxSize <= 0 disables the cap.
func LoadTexture(path string, maxSize int) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}

	b := img.Bounds()
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		img = downscale(img, maxSize)
		Logger().Info("texture downscaled", "path", path, "from", b.Size(), "to", img.Bounds().Size())
	}

	Logger().Info("texture loaded", "path", path, "format", format, "size", img.Bounds().Size())
	return TextureFromImage(img), nil
}

func downscale(img image.Image, maxSize int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = max(1, h*maxSize/w)
		w = maxSize
	} else {
		w = max(1, w*maxSize/h)
		h = maxSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(b.Dx(), b.Dy())
	dst := &image.RGBA{
		Pix:    tex.Pix,
		Stride: tex.Width * 4,
		Rect:   image.Rect(0, 0, tex.Width, tex.Height),
	}
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return tex
}

// NewCheckerTexture creates a procedural checkerboard texture.
func NewCheckerTexture(width, height, checkSize int, c1, c2 Color) *Texture {
	tex := NewTexture(width, height)
	for y := range height {
		for x := range width {
			if (x/checkSize+y/checkSize)%2 == 0 {
				tex.SetPixel(x, y, c1)
			} else {
				tex.SetPixel(x, y, c2)
			}
		}
	}
	return tex
}

// Size reports the texture dimensions.
func (t *Texture) Size() (int, int) {
	return t.Width, t.Height
}

// At returns the texel at (x, y). Out-of-range coordinates are clamped.
func (t *Texture) At(x, y int) Color {
	x = clampInt(x, 0, t.Width-1)
	y = clampInt(y, 0, t.Height-1)
	i := (y*t.Width + x) * 4
	return Color{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// SetPixel sets a texel. Out-of-bounds writes are skipped.
func (t *Texture) SetPixel(x, y int, c Color) {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return
	}
	i := (y*t.Width + x) * 4
	t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Uniform is a 1x1 sampler of a single color.
type Uniform struct {
	C Color
}

func (u Uniform) Size() (int, int)  { return 1, 1 }
func (u Uniform) At(int, int) Color { return u.C }

// sample reads s at texture coordinate (u, v) in [0,1]: the coordinate is
// scaled by (size-1), truncated, and clamped to a valid texel.
func sample(s Sampler, u, v float64) Color {
	w, h := s.Size()
	x := clampInt(int(u*float64(w-1)), 0, w-1)
	y := clampInt(int(v*float64(h-1)), 0, h-1)
	return s.At(x, y)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
