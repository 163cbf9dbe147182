package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/asteroidsx/internal/app"
	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/loop"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $ASTEROIDSX_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Logs would corrupt the screen, so they only go to log.file.
	logger, logCloser, err := cfg.NewLogger(io.Discard, "game")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	a, err := app.New(cfg, logger, app.Options{Audio: true, PersistProgress: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(context.Background(), a.Game, reader, os.Stdout, loop.Options{
		FPS:     cfg.Screen.TargetFPS,
		Ships:   a.Ships,
		History: a.History,
		Logger:  logger,
	})
	_ = term.Restore(fd, oldState)

	if err := a.Close(); err != nil {
		logger.Error("shutdown", "err", err)
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}
