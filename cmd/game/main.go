package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Gem-Crossing/internal/arcade"
	"github.com/Garsondee/Gem-Crossing/internal/config"
	"github.com/Garsondee/Gem-Crossing/internal/game"
	"github.com/Garsondee/Gem-Crossing/internal/sound"
)

func main() {
	path := config.Path()
	cfg, created, err := config.LoadOrCreate(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := config.NewLogger(cfg.Session.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if created {
		logger.Info("wrote default config", "path", path)
	}

	hud := arcade.NewHUD()
	ticker := arcade.NewTicker()
	opts := append(cfg.WorldOptions(),
		game.WithDisplay(hud),
		game.WithListener(ticker),
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
		logger.Fatal("cannot build world", "err", err)
	}
	loader := arcade.NewLoader(cfg.Session.Sprites, world.Settings().Grid, world.Catalogs(), logger)
	g := arcade.New(world, hud, ticker, loader,
		arcade.WithLogger(logger),
		arcade.WithTPS(cfg.Session.TPS),
	)

	w, h := g.Size()
	ebiten.SetWindowTitle("Gem Crossing")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.Session.TPS)
	if err := ebiten.RunGame(g); err != nil {
		logger.Fatal("game exited", "err", err)
	}
}
