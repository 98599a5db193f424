package render

import (
	"math/rand/v2"
	"testing"

	"github.com/taigrr/scanline/pkg/math3d"
	"github.com/taigrr/scanline/pkg/models"
)

func screenTriangle(x0, y0, x1, y1, x2, y2 float64) models.Triangle {
	return models.NewTriangle(math3d.V3(x0, y0, 0), math3d.V3(x1, y1, 0), math3d.V3(x2, y2, 0))
}

// withDepth sets every texture coordinate to a constant 1/w.
func withDepth(tri models.Triangle, w float64) models.Triangle {
	for i := range tri.T {
		tri.T[i] = math3d.Vec2{U: 0.5 * w, V: 0.5 * w, W: w}
	}
	return tri
}

func TestSortByY(t *testing.T) {
	tests := []struct {
		name string
		in   [3]int // y values
		want [3]int // input indices in output order
	}{
		{"sorted", [3]int{0, 1, 2}, [3]int{0, 1, 2}},
		{"reversed", [3]int{2, 1, 0}, [3]int{2, 1, 0}},
		{"middle first", [3]int{1, 0, 2}, [3]int{1, 0, 2}},
		{"equal pair first", [3]int{1, 1, 0}, [3]int{2, 0, 1}},
		{"equal pair last", [3]int{1, 0, 0}, [3]int{1, 2, 0}},
		{"all equal", [3]int{3, 3, 3}, [3]int{0, 1, 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in [3]scanVertex
			for i, y := range tc.in {
				in[i] = scanVertex{x: i, y: y}
			}
			got := sortByY(in)
			for i, idx := range tc.want {
				if got[i].x != idx {
					t.Errorf("position %d holds input %d, want %d", i, got[i].x, idx)
				}
			}
		})
	}
}

func TestScanSpansOrdered(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	const width, height = 40, 30

	for i := range 500 {
		tri := screenTriangle(
			rng.Float64()*(width-1), rng.Float64()*(height-1),
			rng.Float64()*(width-1), rng.Float64()*(height-1),
			rng.Float64()*(width-1), rng.Float64()*(height-1),
		)

		covered := map[[2]int]bool{}
		scanTriangle(tri, func(y int, a, b spanEnd) {
			if a.x > b.x {
				t.Fatalf("case %d row %d: ax %d > bx %d", i, y, a.x, b.x)
			}
			for x := a.x; x < b.x; x++ {
				covered[[2]int{x, y}] = true
			}
		})

		fb := NewFramebuffer(width, height)
		FillTriangle(fb, tri, ColorRed)
		for y := range height {
			for x := range width {
				if fb.GetPixel(x, y) == ColorRed && !covered[[2]int{x, y}] {
					t.Fatalf("case %d: pixel (%d,%d) written outside every span", i, x, y)
				}
			}
		}
	}
}

func TestFillTriangle(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	FillTriangle(fb, screenTriangle(0, 0, 15, 0, 0, 15), ColorGreen)

	if got := fb.GetPixel(3, 3); got != ColorGreen {
		t.Errorf("interior pixel = %v, want green", got)
	}
	if got := fb.GetPixel(14, 14); got != (Color{}) {
		t.Errorf("exterior pixel = %v, want untouched", got)
	}
}

func TestFillTriangleOutOfBounds(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	// Must not panic; only in-range pixels are written.
	FillTriangle(fb, screenTriangle(-20, -20, 30, -5, 2, 40), ColorBlue)
	if fb.GetPixel(2, 2) != ColorBlue {
		t.Error("in-range pixel not filled")
	}
}

func TestDepthTestOrderIndependent(t *testing.T) {
	near := withDepth(screenTriangle(0, 0, 20, 0, 0, 20), 2.0)
	far := withDepth(screenTriangle(0, 0, 20, 0, 0, 20), 1.0)
	red, blue := Uniform{ColorRed}, Uniform{ColorBlue}

	tests := []struct {
		name  string
		first models.Triangle
		fTex  Sampler
		then  models.Triangle
		tTex  Sampler
	}{
		{"near then far", near, red, far, blue},
		{"far then near", far, blue, near, red},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebuffer(32, 32)
			depth := NewDepthBuffer(32, 32)
			TexturedTriangle(fb, depth, tc.first, tc.fTex, ColorWhite)
			TexturedTriangle(fb, depth, tc.then, tc.tTex, ColorWhite)

			if got := fb.GetPixel(5, 5); got != ColorRed {
				t.Errorf("pixel = %v, want the near (red) triangle", got)
			}
			if got := depth.At(5, 5); !approx(got, 2.0) {
				t.Errorf("depth = %v, want 2", got)
			}
		})
	}
}

func TestTexturedTriangleRecoversUV(t *testing.T) {
	// u < 0.5 samples red, u >= 0.5 samples blue.
	tex := NewTexture(3, 1)
	tex.SetPixel(0, 0, ColorRed)
	tex.SetPixel(1, 0, ColorBlue)
	tex.SetPixel(2, 0, ColorBlue)

	// u runs 0..1 across x; every vertex shares the same 1/w, so texU/texW
	// recovers u.
	w := 0.5
	tri := models.Triangle{
		P: [3]math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(20, 0, 0), math3d.V3(0, 20, 0)},
		T: [3]math3d.Vec2{
			{U: 0 * w, V: 0, W: w},
			{U: 1 * w, V: 0, W: w},
			{U: 0 * w, V: 0, W: w},
		},
	}

	fb := NewFramebuffer(32, 32)
	TexturedTriangle(fb, NewDepthBuffer(32, 32), tri, tex, ColorWhite)

	if got := fb.GetPixel(1, 1); got != ColorRed {
		t.Errorf("left pixel = %v, want red", got)
	}
	if got := fb.GetPixel(17, 1); got != ColorBlue {
		t.Errorf("right pixel = %v, want blue", got)
	}
}

func TestTexturedTriangleTint(t *testing.T) {
	fb := NewFramebuffer(16, 16)
	tri := withDepth(screenTriangle(0, 0, 15, 0, 0, 15), 1)
	TexturedTriangle(fb, NewDepthBuffer(16, 16), tri, Uniform{ColorWhite}, RGB(128, 64, 0))

	if got := fb.GetPixel(2, 2); got != RGB(128, 64, 0) {
		t.Errorf("tinted pixel = %v, want (128,64,0)", got)
	}
}

func TestTexturedTriangleZeroDepthNeverDraws(t *testing.T) {
	fb := NewFramebuffer(8, 8)
	tri := withDepth(screenTriangle(0, 0, 7, 0, 0, 7), 0)
	TexturedTriangle(fb, NewDepthBuffer(8, 8), tri, Uniform{ColorRed}, ColorWhite)
	if fb.GetPixel(1, 1) == ColorRed {
		t.Error("a sample with 1/w = 0 must not pass the depth test")
	}
}

func BenchmarkFillTriangle(b *testing.B) {
	fb := NewFramebuffer(256, 240)
	tri := screenTriangle(10, 5, 240, 60, 80, 230)
	for b.Loop() {
		FillTriangle(fb, tri, ColorRed)
	}
}

func BenchmarkTexturedTriangle(b *testing.B) {
	fb := NewFramebuffer(256, 240)
	depth := NewDepthBuffer(256, 240)
	tex := NewCheckerTexture(64, 64, 8, ColorWhite, ColorBlack)
	tri := withDepth(screenTriangle(10, 5, 240, 60, 80, 230), 0.2)
	for b.Loop() {
		depth.Reset()
		TexturedTriangle(fb, depth, tri, tex, ColorWhite)
	}
}
