package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/taigrr/scanline/pkg/engine"
	"github.com/taigrr/scanline/pkg/render"
)

// Snapshot renders n frames at a fixed 1/fps step and writes them to dir
// as frame_0000.png, frame_0001.png, ...
func Snapshot(e *engine.Engine, n, fps int, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	dt := 1 / float64(fps)
	pb := progressbar.Default(int64(n), "rendering")
	for i := range n {
		if i > 0 {
			e.Update(dt, engine.Input{})
		}
		fb := e.DrawFrame()
		path := filepath.Join(dir, fmt.Sprintf("frame_%04d.png", i))
		if err := fb.SavePNG(path); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		render.Logger().Debug("snapshot written", "path", path, "stats", e.Stats())
		pb.Add(1)
	}
	return pb.Finish()
}
