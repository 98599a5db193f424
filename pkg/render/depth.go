package render

// DepthBuffer stores, per pixel, the 1/z of the nearest sample written so
// far. Zero means nothing has been drawn; a larger value is nearer.
type DepthBuffer struct {
	Width  int
	Height int

	d []float64
}

// NewDepthBuffer allocates a cleared depth buffer.
func NewDepthBuffer(width, height int) *DepthBuffer {
	return &DepthBuffer{
		Width:  width,
		Height: height,
		d:      make([]float64, width*height),
	}
}

// Reset sets every entry back to 0.
func (db *DepthBuffer) Reset() {
	clear(db.d)
}

// At returns the stored depth at (x, y), or 0 out of bounds.
func (db *DepthBuffer) At(x, y int) float64 {
	if x < 0 || x >= db.Width || y < 0 || y >= db.Height {
		return 0
	}
	return db.d[y*db.Width+x]
}

// test stores w at (x, y) and reports true when w is strictly nearer than
// the stored value. The caller has bounds-checked (x, y).
func (db *DepthBuffer) test(x, y int, w float64) bool {
	i := y*db.Width + x
	if w > db.d[i] {
		db.d[i] = w
		return true
	}
	return false
}

func (db *DepthBuffer) resize(width, height int) {
	if db.Width == width && db.Height == height {
		return
	}
	db.Width, db.Height = width, height
	db.d = make([]float64, width*height)
}
