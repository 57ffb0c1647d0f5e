package willow3d

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/willow3d/tunables"
)

// PanelSwatches are the colors the panel cycles through for color
// parameters.
var PanelSwatches = []string{
	"white", "skyblue", "red", "orange", "gold", "limegreen", "violet", "hotpink",
}

// Panel layout in pixels. DebugPrint glyphs are 6x16.
const (
	panelMargin     = 8
	panelLineHeight = 16
	panelCharWidth  = 6
)

// PanelOverlay draws a tunables.Panel in the top-right corner and edits it
// with the arrow keys: up and down select a parameter, left and right
// adjust it.
type PanelOverlay struct {
	panel    *tunables.Panel
	params   []tunables.Param
	selected int
	bg       *ebiten.Image
}

// NewPanelOverlay returns an overlay for p. Add it with Scene.AddOverlay.
func NewPanelOverlay(p *tunables.Panel) *PanelOverlay {
	return &PanelOverlay{panel: p, params: p.Params()}
}

// Selected returns the name of the highlighted parameter, or "" if the
// panel is empty.
func (o *PanelOverlay) Selected() string {
	if len(o.params) == 0 {
		return ""
	}
	return o.params[o.selected].Name
}

// Update handles arrow keys pressed this tick.
func (o *PanelOverlay) Update() {
	for _, k := range [...]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyArrowDown, ebiten.KeyArrowLeft, ebiten.KeyArrowRight} {
		if inpututil.IsKeyJustPressed(k) {
			o.press(k)
		}
	}
}

// press applies a single key press.
func (o *PanelOverlay) press(k ebiten.Key) {
	n := len(o.params)
	if n == 0 {
		return
	}
	switch k {
	case ebiten.KeyArrowUp:
		o.selected = (o.selected + n - 1) % n
	case ebiten.KeyArrowDown:
		o.selected = (o.selected + 1) % n
	case ebiten.KeyArrowLeft:
		o.adjust(-1)
	case ebiten.KeyArrowRight:
		o.adjust(1)
	}
}

func (o *PanelOverlay) adjust(steps int) {
	prm := o.params[o.selected]
	var err error
	switch prm.Kind {
	case tunables.KindFloat:
		err = o.panel.Adjust(prm.Name, steps)
	case tunables.KindColor:
		err = o.panel.Set(prm.Name, nextSwatch(o.panel.Text(prm.Name), steps))
	}
	if err != nil {
		logger.Warn("panel adjust", "param", prm.Name, "err", err)
	}
}

// nextSwatch returns the swatch steps positions after current. Colors that
// are not in the swatch list restart from the first entry.
func nextSwatch(current string, steps int) string {
	n := len(PanelSwatches)
	idx := -1
	for i, s := range PanelSwatches {
		if strings.EqualFold(s, current) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return PanelSwatches[0]
	}
	return PanelSwatches[((idx+steps)%n+n)%n]
}

// lines renders the panel rows. The selected row is marked with '>'.
func (o *PanelOverlay) lines() []string {
	out := make([]string, len(o.params))
	for i, prm := range o.params {
		mark := ' '
		if i == o.selected {
			mark = '>'
		}
		out[i] = fmt.Sprintf("%c %s: %s", mark, prm.Name, o.panel.Text(prm.Name))
	}
	return out
}

// Draw paints the panel onto screen.
func (o *PanelOverlay) Draw(screen *ebiten.Image) {
	rows := o.lines()
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	w := width*panelCharWidth + 2*panelMargin
	h := len(rows)*panelLineHeight + 2*panelMargin
	x := screen.Bounds().Dx() - w - panelMargin

	if o.bg == nil || o.bg.Bounds().Dx() != w || o.bg.Bounds().Dy() != h {
		o.bg = ebiten.NewImage(w, h)
		o.bg.Fill(color.RGBA{0, 0, 0, 160})
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(float64(x), panelMargin)
	screen.DrawImage(o.bg, &op)
	ebitenutil.DebugPrintAt(screen, strings.Join(rows, "\n"), x+panelMargin, 2*panelMargin)
}
