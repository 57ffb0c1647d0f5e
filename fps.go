package willow3d

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// FPSOverlay displays the current FPS and TPS in the top-left corner.
// The text refreshes every ~0.5 seconds of wall-clock ticks.
type FPSOverlay struct {
	img   *ebiten.Image
	ticks int
	text  string
}

// NewFPSOverlay creates an FPS overlay. Add it with Scene.AddOverlay.
func NewFPSOverlay() *FPSOverlay {
	return &FPSOverlay{text: "FPS: -\nTPS: -"}
}

// Update refreshes the cached text about twice a second.
func (o *FPSOverlay) Update() {
	o.ticks++
	if o.ticks < ebiten.TPS()/2 {
		return
	}
	o.ticks = 0
	o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

// Draw paints the overlay onto screen.
func (o *FPSOverlay) Draw(screen *ebiten.Image) {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	if o.img == nil {
		o.img = ebiten.NewImage(100, 32)
	}
	o.img.Clear()
	// Semi-transparent background for readability
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, o.text)
	screen.DrawImage(o.img, nil)
}
