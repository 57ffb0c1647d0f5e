package willow3d

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/willow3d/linear"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, interaction events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries interaction data for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	EntityID  uint32
	ScreenX   float64
	ScreenY   float64
	Point     Vec3
	Button    MouseButton
	Modifiers KeyModifiers
}

const (
	defaultCommandCap = 4096
	defaultWidth      = 800
	defaultHeight     = 600
)

// Scene is the top-level object that owns the node tree, camera, lights,
// input state, and render buffers.
type Scene struct {
	// ClearColor fills the screen before meshes are drawn. The zero value
	// leaves the screen as Ebitengine cleared it.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// AntiAlias is passed to DrawTriangles.
	AntiAlias bool

	root   *Node
	camera *Camera
	lights []*Light
	store  EntityStore
	debug  bool

	// Clock
	elapsed    float64
	frame      uint64
	updateFunc func(FrameContext)
	updateBuf  []*Node
	tweens     []*TweenGroup
	overlays   []Overlay

	// running is set by Run; real mouse input is only polled while true.
	running bool

	// Render state
	commands   []triCommand
	batchVerts []ebiten.Vertex
	batchInds  []uint16

	// Input state
	handlers    handlerRegistry
	pointer     pointerState
	hitBuf      []*Node
	injectQueue []syntheticPointerEvent
	injectDown  bool

	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container and a
// default 800x600 camera five units back on +Z.
func NewScene() *Scene {
	return &Scene{
		ScreenshotDir: "screenshots",
		root:          NewContainer("root"),
		camera:        newCamera(Rect{Width: defaultWidth, Height: defaultHeight}),
		commands:      make([]triCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetSize sets the camera viewport to the full w x h screen.
func (s *Scene) SetSize(w, h int) {
	s.camera.Viewport = Rect{Width: float64(w), Height: float64(h)}
}

// Elapsed returns the scene time in seconds.
func (s *Scene) Elapsed() float64 {
	return s.elapsed
}

// Frame returns the number of frames advanced so far.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// SetUpdateFunc registers a callback run once per frame, before any
// Node.OnUpdate.
func (s *Scene) SetUpdateFunc(fn func(FrameContext)) {
	s.updateFunc = fn
}

// AddOverlay appends a screen-space overlay. Overlays update after the
// scene and draw on top of it in the order added.
func (s *Scene) AddOverlay(o Overlay) {
	s.overlays = append(s.overlays, o)
}

// Update advances the scene by one tick of 1/TPS seconds.
func (s *Scene) Update() {
	s.Advance(1.0 / float64(ebiten.TPS()))
}

// Advance steps the scene clock by dt seconds. Negative values are treated
// as zero. Each call:
//
//  1. advances the attached TestRunner,
//  2. refreshes world transforms and handles one frame of pointer input,
//  3. runs the scene update func, then every Node.OnUpdate in tree order,
//  4. advances tweens, the camera and overlays.
func (s *Scene) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	s.elapsed += dt
	s.frame++
	ctx := FrameContext{Elapsed: s.elapsed, Delta: dt, Frame: s.frame}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	updateWorldTransform(s.root, linear.Identity(), false)
	s.processInput()

	if s.updateFunc != nil {
		s.updateFunc(ctx)
	}
	// Snapshot the tree first so callbacks may add or remove nodes.
	s.updateBuf = collectUpdatable(s.root, s.updateBuf[:0])
	for _, n := range s.updateBuf {
		if !n.disposed && n.OnUpdate != nil {
			n.OnUpdate(ctx)
		}
	}
	clear(s.updateBuf)

	s.updateTweens(float32(dt))
	s.camera.update(float32(dt))
	for _, o := range s.overlays {
		o.Update()
	}
	updateWorldTransform(s.root, linear.Identity(), false)
}

func collectUpdatable(n *Node, buf []*Node) []*Node {
	if n.OnUpdate != nil {
		buf = append(buf, n)
	}
	for _, c := range n.children {
		buf = collectUpdatable(c, buf)
	}
	return buf
}

// Draw renders every visible mesh back to front, then the overlays.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	updateWorldTransform(s.root, linear.Identity(), false)
	s.commands = s.commands[:0]
	treeOrder := 0
	s.traverse(s.root, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.sortCommands()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.triangleCount = len(s.commands)
		t0 = time.Now()
	}

	calls := s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.drawCallCount = calls
		s.debugLog(stats)
	}

	for _, o := range s.overlays {
		o.Draw(screen)
	}
	s.flushScreenshots(screen)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
