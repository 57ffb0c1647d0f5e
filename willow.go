package willow3d

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/willow3d/linear"
	"github.com/phanxgames/willow3d/palette"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color = palette.Color

// ColorWhite is the default mesh color.
var ColorWhite = palette.White

// Vec3 is the 3D vector used for positions, rotations (radians) and scales.
type Vec3 = linear.Vec3

// Rect is an axis-aligned screen rectangle. The coordinate system has its
// origin at the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeMesh                      // renders a Geometry as flat-shaded triangles
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves (hover, no button)
	EventClick                         // fires on press then release over the same node
	EventPointerEnter                  // fires when the pointer enters a node's visible bounds
	EventPointerLeave                  // fires when the pointer leaves a node's visible bounds
)

func (e EventType) String() string {
	switch e {
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerMove:
		return "pointermove"
	case EventClick:
		return "click"
	case EventPointerEnter:
		return "pointerenter"
	case EventPointerLeave:
		return "pointerleave"
	}
	return "unknown"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// FrameContext is passed to per-frame callbacks.
type FrameContext struct {
	// Elapsed is the time in seconds since the scene started.
	Elapsed float64
	// Delta is the time in seconds since the previous frame.
	Delta float64
	// Frame counts calls to Scene.Advance, starting at 1.
	Frame uint64
}

// Overlay is drawn on top of the 3D scene in screen space, after all meshes.
type Overlay interface {
	Update()
	Draw(screen *ebiten.Image)
}
