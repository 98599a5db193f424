package render

import (
	"github.com/taigrr/scanline/pkg/models"
)

// DrawTriangleOutline draws the three edges of a screen-space triangle.
func DrawTriangleOutline(fb *Framebuffer, tri models.Triangle, c Color) {
	for i := range 3 {
		a, b := tri.P[i], tri.P[(i+1)%3]
		fb.DrawLine(int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}
