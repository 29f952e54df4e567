// Command term plays Gem Crossing in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/Garsondee/Gem-Crossing/internal/config"
	"github.com/Garsondee/Gem-Crossing/internal/game"
	"github.com/Garsondee/Gem-Crossing/internal/sound"
	"github.com/Garsondee/Gem-Crossing/internal/termui"
)

func main() {
	var logPath string
	flag.StringVar(&logPath, "log", "gemcross-term.log", "file the session log is written to")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "term: stdout is not a terminal")
		os.Exit(1)
	}
	if err := run(logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(logPath string) error {
	path := config.Path()
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		return err
	}
	// The screen owns the terminal, so logs go to a file.
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger, err := config.NewLogger(cfg.Session.LogLevel, logFile)
	if err != nil {
		return err
	}
	if created {
		logger.Info("wrote default config", "path", path)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	display := termui.NewDisplay()
	var app *termui.App
	footer := game.ListenerFunc(func(e game.Event) {
		if app != nil {
			app.HandleEvent(e)
		}
	})
	opts := append(cfg.WorldOptions(),
		game.WithDisplay(display),
		game.WithListener(footer),
		game.WithLogger(logger),
	)
	if cfg.Session.Sound {
		cues := sound.New(logger)
		if err := cues.Init(); err == nil {
			defer cues.Close()
			opts = append(opts, game.WithListener(cues))
		}
	}
	world, err := game.NewWorld(cfg.Settings(), opts...)
	if err != nil {
		return err
	}

	app = termui.New(screen, world, display,
		termui.WithTPS(cfg.Session.TPS),
		termui.WithAppLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Run(ctx)
}
