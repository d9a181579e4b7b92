//go:build ebiten

package main

import (
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"crystal-ca/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(pflag.CommandLine)
	pflag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	cc, err := cfg.Resolve()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	if cc.Seed == 0 {
		cc.Seed = time.Now().UnixNano()
	}

	game := app.New(cc, cfg.Scale, cfg.PanelWidth, cfg.Out, logger)

	ebiten.SetWindowTitle("crystal-view")
	ebiten.SetWindowSize(cc.Width*cfg.Scale+cfg.PanelWidth, cc.Height*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}
