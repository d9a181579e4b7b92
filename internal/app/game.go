//go:build ebiten

package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crystal-ca/internal/noise"
	"crystal-ca/internal/render"
	"crystal-ca/internal/sims/crystal"
	"crystal-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type generated struct {
	cfg crystal.Config
	res *crystal.Result
	err error
}

// Game shows a generated crystal image and lets the user reseed and save it.
type Game struct {
	cfg     crystal.Config
	res     *crystal.Result
	painter *render.RasterPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	log     *slog.Logger

	scale   int
	out     string
	pending chan generated

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a Game and starts generating cfg in the background.
func New(cfg crystal.Config, scale, panelWidth int, out string, logger *slog.Logger) *Game {
	g := &Game{
		cfg:     cfg,
		painter: render.NewRasterPainter(cfg.Width, cfg.Height),
		overlay: ui.NewOverlay(scale),
		hud:     ui.NewHUD(panelWidth),
		log:     logger,
		scale:   scale,
		out:     out,
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.Reset(cfg.Seed)
	return g
}

// Reset regenerates the image with the provided seed. The noise seed is
// redrawn unless the config pins it.
func (g *Game) Reset(seed int64) {
	if g.pending != nil {
		return
	}
	cfg := g.cfg
	cfg.Seed = seed
	g.pending = make(chan generated, 1)
	g.hud.SetContent(cfg.Parameters(), nil)
	g.hud.SetStatus("growing...")
	g.log.Info("simulating growth", "width", cfg.Width, "height", cfg.Height, "seeds", cfg.NSeeds, "seed", seed)

	go func(ch chan<- generated) {
		res, err := crystal.Generate(g.ctx, cfg, crystal.WithLogger(g.log))
		ch <- generated{cfg: cfg, res: res, err: err}
	}(g.pending)
}

// Update handles per-frame logic.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.cancel()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	g.overlay.Update()

	select {
	case done := <-g.pending:
		g.pending = nil
		g.finish(done)
	default:
	}
	return nil
}

func (g *Game) finish(done generated) {
	if done.err != nil {
		g.log.Error("generation failed", "seed", done.cfg.Seed, "error", done.err)
		g.hud.SetStatus("no image: " + done.err.Error())
		return
	}
	g.cfg.Seed = done.cfg.Seed
	g.res = done.res
	g.painter.Upload(done.res.Raster)

	field := noise.New(done.res.NoiseSeed)
	g.overlay.SetRun(ui.DensityMask(field, done.cfg), done.cfg.Width, done.cfg.Height, done.res.Seeds)
	g.hud.SetContent(done.cfg.Parameters(), ui.StatsLines(done.res))
	g.hud.SetStatus("R reseed  S save  1/2 overlays")
	g.log.Info("growth finished", "noise_seed", done.res.NoiseSeed, "rounds", done.res.Stats.Rounds, "mutations", done.res.Stats.Mutations)
}

func (g *Game) save() {
	if g.res == nil || g.res.Raster == nil {
		return
	}
	if err := render.Save(g.out, g.res.Raster); err != nil {
		g.log.Error("save failed", "path", g.out, "error", err)
		g.hud.SetStatus("save failed")
		return
	}
	g.log.Info("image saved", "path", g.out)
	g.hud.SetStatus(fmt.Sprintf("saved %s", g.out))
}

// Draw renders the image, overlays and side panel.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.res != nil {
		g.painter.Draw(screen, float64(g.scale))
		g.overlay.Draw(screen)
	}
	g.hud.Draw(screen, g.cfg.Width*g.scale, g.cfg.Height*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width*g.scale + g.hud.Width(), g.cfg.Height*g.scale
}
