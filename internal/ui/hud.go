//go:build ebiten

package ui

import (
	"image/color"

	"crystal-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the parameter and run summary panel to the right of the image.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
	dirty      bool

	snapshot core.ParameterSnapshot
	stats    []string
	status   string
}

// NewHUD constructs a HUD with the provided panel width.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width, dirty: true}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// SetContent replaces the parameters and summary lines shown in the panel.
func (h *HUD) SetContent(snapshot core.ParameterSnapshot, stats []string) {
	h.snapshot = snapshot
	h.stats = stats
	h.dirty = true
}

// SetStatus sets the single status line at the bottom of the panel.
func (h *HUD) SetStatus(status string) {
	if h.status != status {
		h.status = status
		h.dirty = true
	}
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
		h.dirty = true
	}
	if h.dirty {
		h.redraw()
		h.dirty = false
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) redraw() {
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline

	for _, group := range h.snapshot.Groups {
		text.Draw(h.panel, group.Name, face, panelPadding, y, headerColor)
		y += lineSpacing
		for _, p := range group.Params {
			text.Draw(h.panel, p.Label, face, panelPadding, y, labelColor)
			bounds := text.BoundString(face, p.Value)
			text.Draw(h.panel, p.Value, face, h.width-panelPadding-bounds.Dx(), y, valueColor)
			y += lineSpacing
		}
		y += groupSpacing
	}

	if len(h.stats) > 0 {
		text.Draw(h.panel, "Run", face, panelPadding, y, headerColor)
		y += lineSpacing
		for _, line := range h.stats {
			text.Draw(h.panel, line, face, panelPadding, y, valueColor)
			y += lineSpacing
		}
	}

	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, h.lastHeight-panelPadding, statusColor)
	}
}

const (
	panelPadding   = 12
	headerBaseline = 14
	lineSpacing    = 16
	groupSpacing   = 8
)

var (
	headerColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	valueColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	statusColor = color.RGBA{R: 120, G: 200, B: 140, A: 255}
)
