// Package scene loads the model and texture named by a scene file and
// renders headless snapshots of it.
package scene

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// Load loads the model, or the built-in cube when none is named, and
// picks its texture: the configured image, then a texture embedded in a
// GLB, then none.
func Load(cfg *config.Config) (*models.Mesh, *render.Texture, error) {
	var (
		tex *render.Texture
		err error
	)
	if cfg.Texture != "" {
		tex, err = render.LoadTexture(cfg.Texture, cfg.MaxTextureSize)
		if err != nil {
			return nil, nil, fmt.Errorf("load texture: %w", err)
		}
	}

	opts := models.LoadOptions{Recenter: cfg.Recenter}
	var mesh *models.Mesh

	ext := strings.ToLower(filepath.Ext(cfg.Model))
	switch {
	case cfg.Model == "":
		mesh = models.Cube()
		if cfg.Recenter {
			mesh = mesh.Recentered()
		}
		if tex == nil {
			tex = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
		}
	case ext == ".glb" || ext == ".gltf":
		var embedded image.Image
		mesh, embedded, err = models.LoadGLBWithTexture(cfg.Model, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
		// Use embedded texture if no explicit texture and one exists
		if tex == nil && embedded != nil {
			tex = render.TextureFromImage(embedded)
			render.Logger().Info("using embedded texture", "size", embedded.Bounds().Size())
		}
	case ext == ".obj":
		mesh, err = models.LoadOBJ(cfg.Model, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("load model: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("unsupported format: %s (use .obj or .glb)", ext)
	}

	render.Logger().Info("model loaded", "name", mesh.Name, "triangles", mesh.TriangleCount())
	return mesh, tex, nil
}
