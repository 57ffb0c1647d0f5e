package willow3d

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/willow3d/linear"
)

// dollyAnim holds the active eye tween, one gween.Tween per axis.
type dollyAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is a perspective camera looking from Eye toward Target.
type Camera struct {
	// Eye is the world-space camera position.
	Eye Vec3
	// Target is the world-space point the camera looks at.
	Target Vec3
	// Up is the approximate up direction; it need not be orthogonal to the
	// view direction.
	Up Vec3
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the visible depth range.
	Near, Far float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	view  linear.M4
	dirty bool

	dolly *dollyAnim
}

// Default camera placement: five units back on +Z looking at the origin.
const (
	DefaultCameraFOV  = 75
	DefaultCameraNear = 0.1
	DefaultCameraFar  = 1000
)

// newCamera creates a Camera with default values and the given viewport.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		Eye:      Vec3{0, 0, 5},
		Up:       Vec3{0, 1, 0},
		FOV:      DefaultCameraFOV,
		Near:     DefaultCameraNear,
		Far:      DefaultCameraFar,
		Viewport: viewport,
		dirty:    true,
	}
}

// LookAt moves the camera to eye and points it at target.
func (c *Camera) LookAt(eye, target Vec3) {
	c.Eye = eye
	c.Target = target
	c.dirty = true
}

// DollyTo animates the eye to the given position over duration seconds. The
// target stays fixed.
func (c *Camera) DollyTo(eye Vec3, duration float32, easeFn ease.TweenFunc) {
	d := &dollyAnim{}
	for i := range d.tweens {
		d.tweens[i] = gween.New(float32(c.Eye[i]), float32(eye[i]), duration, easeFn)
	}
	c.dolly = d
}

// Dollying reports whether a DollyTo animation is in progress.
func (c *Camera) Dollying() bool {
	return c.dolly != nil
}

// update advances the dolly animation. Called from Scene.Advance.
func (c *Camera) update(dt float32) {
	if c.dolly == nil {
		return
	}
	prev := c.Eye
	all := true
	for i, tw := range c.dolly.tweens {
		if c.dolly.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		c.Eye[i] = float64(val)
		c.dolly.done[i] = done
		all = all && done
	}
	if all {
		c.dolly = nil
	}
	if c.Eye != prev {
		c.dirty = true
	}
}

// MarkDirty forces a recomputation of the view matrix. Call it after
// assigning Eye, Target or Up directly.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// ViewMatrix returns the world-to-camera matrix, recomputing it if dirty.
func (c *Camera) ViewMatrix() linear.M4 {
	if c.dirty {
		c.view = linear.LookAt(c.Eye, c.Target, c.Up)
		c.dirty = false
	}
	return c.view
}

func (c *Camera) aspect() float64 {
	if c.Viewport.Empty() {
		return 1
	}
	return c.Viewport.Width / c.Viewport.Height
}

func (c *Camera) tanHalfFOV() float64 {
	return math.Tan(c.FOV * math.Pi / 360)
}

// Project converts a world-space point to screen coordinates. depth is the
// distance in front of the camera along its view axis. ok is false when the
// point lies outside the [Near, Far] range.
func (c *Camera) Project(p Vec3) (sx, sy, depth float64, ok bool) {
	v := c.ViewMatrix().Point(p)
	depth = -v[2]
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}
	sx, sy = c.toScreen(v)
	return sx, sy, depth, true
}

// toScreen projects a camera-space point that is known to be in front of
// the camera.
func (c *Camera) toScreen(v Vec3) (sx, sy float64) {
	t := c.tanHalfFOV()
	depth := -v[2]
	ndcX := v[0] / (depth * t * c.aspect())
	ndcY := v[1] / (depth * t)
	sx = c.Viewport.X + (ndcX+1)/2*c.Viewport.Width
	sy = c.Viewport.Y + (1-ndcY)/2*c.Viewport.Height
	return sx, sy
}

// ScreenRay returns the world-space ray through the given screen point.
// Dir is normalized.
func (c *Camera) ScreenRay(sx, sy float64) linear.Ray {
	ndcX := 2*(sx-c.Viewport.X)/c.Viewport.Width - 1
	ndcY := 1 - 2*(sy-c.Viewport.Y)/c.Viewport.Height
	t := c.tanHalfFOV()

	f := c.Target.Sub(c.Eye).Norm()
	s := f.Cross(c.Up).Norm()
	u := s.Cross(f)

	dir := s.Scale(ndcX * t * c.aspect()).
		Add(u.Scale(ndcY * t)).
		Add(f)
	return linear.Ray{Origin: c.Eye, Dir: dir.Norm()}
}
