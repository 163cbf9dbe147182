package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/asteroidsx/internal/app"
	"github.com/tomz197/asteroidsx/internal/config"
	"github.com/tomz197/asteroidsx/internal/draw"
	"github.com/tomz197/asteroidsx/internal/loop"
	"github.com/tomz197/asteroidsx/internal/stats"
)

// server hands every SSH session its own game. Sessions share only the
// history file.
type server struct {
	cfg      *config.Config
	logger   *log.Logger
	history  *stats.History
	sessions sync.WaitGroup
	nextID   int
	mu       sync.Mutex
}

func main() {
	configPath := flag.String("config", "", "YAML config file (default $ASTEROIDSX_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger, logCloser, err := cfg.NewLogger(os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "host", cfg.SSH.Host, "port", cfg.SSH.Port,
		"hostKeyPath", cfg.SSH.HostKeyPath, "workingDir", workingDir)

	srv := &server{cfg: cfg, logger: logger}
	if cfg.Stats.HistoryFile != "" {
		srv.history = stats.NewHistory(cfg.Stats.HistoryFile)
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			srv.gameMiddleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Shutdown closes the listener and waits for sessions; closing their
	// channels ends each game loop.
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "err", err)
		_ = s.Close()
	}
	srv.sessions.Wait()
}

func (srv *server) sessionID() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.nextID++
	return srv.nextID
}

// gameMiddleware runs one game per SSH session.
func (srv *server) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		srv.sessions.Add(1)
		defer srv.sessions.Done()

		logger := srv.logger.With("session", srv.sessionID(), "user", sess.User())
		logger.Info("new game session", "terminal", pty.Term,
			"size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		a, err := app.New(srv.cfg, logger, app.Options{
			History: srv.history,
			Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
		})
		if err != nil {
			logger.Error("session setup failed", "err", err)
			fmt.Fprintln(sess, "Error: could not start a game")
			return
		}

		err = loop.Run(sess.Context(), a.Game, bufio.NewReader(sess), sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			FPS:          srv.cfg.Screen.TargetFPS,
			IdleWarn:     loop.InactivityWarnUser,
			IdleTimeout:  loop.InactivityDisconnectUser,
			Ships:        a.Ships,
			History:      a.History,
			Logger:       logger,
		})
		if errors.Is(err, loop.ErrInactive) {
			fmt.Fprintln(sess, "Disconnected for inactivity.")
		} else if err != nil {
			logger.Error("game error", "err", err)
		}
		if err := a.Close(); err != nil {
			logger.Warn("closing session", "err", err)
		}

		logger.Info("session ended", "score", a.Game.Score(), "level", a.Game.Level())
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
