// scanline - software 3D renderer
// Draws an OBJ or GLB model (or a built-in cube) with a pure software
// pipeline, in the terminal, in a window, or to PNG snapshots.
//
// Controls:
//
//	Arrows  - Move the camera up/down/left/right
//	W/S     - Move forward/back along the view direction
//	A/D     - Turn left/right
//	Esc     - Quit
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/taigrr/scanline/internal/config"
	"github.com/taigrr/scanline/internal/scene"
	"github.com/taigrr/scanline/internal/window"
	"github.com/taigrr/scanline/pkg/engine"
	"github.com/taigrr/scanline/pkg/render"
)

var (
	configPath = flag.String("config", "", "Path to a YAML scene file")
	useWindow  = flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")
	scale      = flag.Int("scale", 2, "Window pixels per frame pixel")
	frames     = flag.Int("frames", 0, "Render this many frames to PNG files and exit")
	outDir     = flag.String("out", ".", "Directory for -frames snapshots")
	logPath    = flag.String("log", "", "Write debug logs to this file")

	overrides = config.RegisterFlags(flag.CommandLine)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "scanline - Software 3D Renderer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scanline [options] [model.obj|model.glb]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Arrows  - Move up/down/left/right\n")
		fmt.Fprintf(os.Stderr, "  W/S     - Move forward/back\n")
		fmt.Fprintf(os.Stderr, "  A/D     - Turn left/right\n")
		fmt.Fprintf(os.Stderr, "  Esc     - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		render.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	if flag.NArg() > 0 {
		cfg.Model = flag.Arg(0)
	}
	if err := overrides.Apply(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	mesh, tex, err := scene.Load(cfg)
	if err != nil {
		return err
	}

	ecfg, err := cfg.Engine()
	if err != nil {
		return err
	}

	switch {
	case *frames > 0:
		e, err := engine.New(ecfg, mesh, tex)
		if err != nil {
			return err
		}
		return scene.Snapshot(e, *frames, cfg.FPS, *outDir)
	case *useWindow:
		e, err := engine.New(ecfg, mesh, tex)
		if err != nil {
			return err
		}
		return window.Run(e, window.Options{
			Title: "scanline - " + mesh.Name,
			Scale: *scale,
			TPS:   cfg.FPS,
		})
	default:
		return runTerminal(ecfg, mesh, tex, cfg.FPS)
	}
}
