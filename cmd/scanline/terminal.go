package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/scanline/pkg/engine"
	"github.com/taigrr/scanline/pkg/models"
	"github.com/taigrr/scanline/pkg/render"
)

// runTerminal draws into the terminal with half blocks, so the frame is
// one column per cell and two rows per cell.
func runTerminal(cfg engine.Config, mesh *models.Mesh, tex *render.Texture, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	cfg.Width, cfg.Height = width, height*2
	e, err := engine.New(cfg, mesh, tex)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	// Context for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	keys := newKeyState()
	events := term.Events()
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				if err := e.Resize(width, height*2); err != nil {
					render.Logger().Warn("resize ignored", "error", err)
				}

			case uv.KeyPressEvent:
				if ev.MatchString("escape", "ctrl+c") {
					return nil
				}
				for _, b := range keyBindings {
					if ev.MatchString(b.keys...) {
						keys.press(b.action, time.Now())
					}
				}

			case uv.KeyReleaseEvent:
				for _, b := range keyBindings {
					if ev.MatchString(b.keys...) {
						keys.release(b.action)
					}
				}
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now
			if dt > 0.1 {
				dt = 0.1
			}

			e.Update(dt, keys.input(now))
			fb := e.DrawFrame()
			fb.Draw(term, uv.Rectangle(image.Rect(0, 0, width, height)))
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}
