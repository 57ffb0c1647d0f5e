package willow3d

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the window and screen size in pixels.
	// Zero values default to 800x600.
	Width, Height int
	// ShowFPS adds an FPS overlay in the top-left corner.
	ShowFPS bool
	// ExitOnScriptDone stops the game loop once the attached TestRunner has
	// finished and its screenshots have been written.
	ExitOnScriptDone bool
}

// gameShell wraps a Scene as an ebiten.Game.
type gameShell struct {
	scene *Scene
	cfg   RunConfig
	// drawnAfterDone counts frames drawn since the script finished, so the
	// final screenshot is flushed before exiting.
	drawnAfterDone int
}

func (g *gameShell) Update() error {
	g.scene.Update()
	if g.cfg.ExitOnScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() && g.drawnAfterDone > 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.scene.testRunner != nil && g.scene.testRunner.Done() {
		g.drawnAfterDone++
	}
}

func (g *gameShell) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs the scene's game loop until the window is
// closed. It blocks and must be called from the main goroutine.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	scene.SetSize(cfg.Width, cfg.Height)
	if cfg.ShowFPS {
		scene.AddOverlay(NewFPSOverlay())
	}

	scene.running = true
	defer func() { scene.running = false }()
	logger.Info("starting game loop", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(&gameShell{scene: scene, cfg: cfg})
}
