// Command snapshot plays an autopiloted game headless and writes PNG frames.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/tomz197/asteroidsx/internal/app"
	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/loop"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $ASTEROIDSX_CONFIG)")
	outDir := flag.String("out", "", "output directory (default snapshot.out_dir)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, logCloser, err := cfg.NewLogger(os.Stderr, "snapshot")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	snap := cfg.Snapshot
	dir := snap.OutDir
	if *outDir != "" {
		dir = *outDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Fatal("creating output directory", "err", err)
	}

	a, err := app.New(cfg, logger, app.Options{Rand: rand.New(rand.NewSource(snap.Seed))})
	if err != nil {
		logger.Fatal("setup", "err", err)
	}
	defer a.Close()

	img := draw.NewImage(snap.Width, snap.Height)
	surface := draw.NewContext(img, cfg.Screen.Width, cfg.Screen.Height)
	dt := 1 / float64(cfg.Screen.TargetFPS)

	err = loop.Attract(a.Game, surface, dt, snap.Frames, snap.Every, func(i int) error {
		path := filepath.Join(dir, fmt.Sprintf("frame_%03d.png", i))
		if err := writePNG(path, img.RGBA()); err != nil {
			return err
		}
		logger.Info("wrote frame", "path", path, "score", a.Game.Score(), "level", a.Game.Level())
		return nil
	})
	if err != nil {
		logger.Fatal("rendering", "err", err)
	}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
