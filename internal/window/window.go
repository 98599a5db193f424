// Package window presents engine frames in a desktop window and feeds
// held keys back as engine input.
package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/scanline/pkg/engine"
	"github.com/taigrr/scanline/pkg/render"
)

// Options configure the window.
type Options struct {
	Title string
	Scale int // Window pixels per frame pixel
	TPS   int // Updates per second
}

// Run opens a window showing e and blocks until it is closed or Escape is
// pressed.
func Run(e *engine.Engine, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 2
	}
	if opts.TPS <= 0 {
		opts.TPS = 60
	}

	w, h := e.Size()
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(w*opts.Scale, h*opts.Scale)
	ebiten.SetTPS(opts.TPS)

	render.Logger().Info("window opened", "width", w, "height", h, "scale", opts.Scale, "tps", opts.TPS)
	err := ebiten.RunGame(&game{e: e, dt: 1 / float64(opts.TPS)})
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	e   *engine.Engine
	dt  float64
	img *ebiten.Image
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.e.Update(g.dt, heldKeys(ebiten.IsKeyPressed))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	fb := g.e.DrawFrame()
	if g.img == nil || g.img.Bounds().Dx() != fb.Width || g.img.Bounds().Dy() != fb.Height {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	g.img.WritePixels(fb.Pix)
	screen.DrawImage(g.img, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.e.Size()
}

// heldKeys maps the keyboard onto engine input: arrows move on X and Y,
// W/S move along the view direction, A/D turn.
func heldKeys(pressed func(ebiten.Key) bool) engine.Input {
	return engine.Input{
		Up:        pressed(ebiten.KeyArrowUp),
		Down:      pressed(ebiten.KeyArrowDown),
		Left:      pressed(ebiten.KeyArrowLeft),
		Right:     pressed(ebiten.KeyArrowRight),
		Forward:   pressed(ebiten.KeyW),
		Back:      pressed(ebiten.KeyS),
		TurnLeft:  pressed(ebiten.KeyA),
		TurnRight: pressed(ebiten.KeyD),
	}
}
