package config

import (
	"flag"
	"fmt"
)

// Overrides are the scene settings that can also be given on the command
// line. Only flags present on the command line replace file values.
type Overrides struct {
	fs *flag.FlagSet

	texture    *string
	fps        *int
	background *string
	mode       *string
	recenter   *bool
	shade      *bool
	wireframe  *bool
	size       *string
}

// RegisterFlags defines the override flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Overrides {
	return &Overrides{
		fs:         fs,
		texture:    fs.String("texture", "", "Path to texture image (PNG/JPG/BMP/WebP)"),
		fps:        fs.Int("fps", DefaultFPS, "Target FPS"),
		background: fs.String("bg", DefaultBackground, "Background color (R,G,B)"),
		mode:       fs.String("mode", DefaultMode, "Visibility mode: textured (depth buffer) or flat (painter's sort)"),
		recenter:   fs.Bool("recenter", false, "Move the model centroid to the origin"),
		shade:      fs.Bool("shade", false, "Modulate texels by the face lighting"),
		wireframe:  fs.Bool("wireframe", false, "Outline every rasterized triangle"),
		size:       fs.String("size", "", "Frame size WxH for window and snapshot output"),
	}
}

// Apply copies the flags set on the command line into c and validates the
// result.
func (o *Overrides) Apply(c *Config) error {
	var err error
	o.fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "texture":
			c.Texture = *o.texture
		case "fps":
			c.FPS = *o.fps
		case "bg":
			c.Background = *o.background
		case "mode":
			c.Mode = *o.mode
		case "recenter":
			c.Recenter = *o.recenter
		case "shade":
			c.Shade = *o.shade
		case "wireframe":
			c.Wireframe = *o.wireframe
		case "size":
			if _, scanErr := fmt.Sscanf(*o.size, "%dx%d", &c.Width, &c.Height); scanErr != nil {
				err = fmt.Errorf("size %q: want WxH", *o.size)
			}
		}
	})
	if err != nil {
		return err
	}
	return c.Validate()
}
