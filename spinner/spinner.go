// Package spinner implements the frame-driven objects of the demos: shapes
// that spin a little faster while hovered, optionally wobble along one axis,
// swap between two palette colors on hover and grow while toggled by a click.
//
// Nothing here knows about rendering. The host calls Update once per frame
// and forwards pointer events to Enter, Leave and Click; the returned
// Transform and Color are copied onto whatever draws the object.
package spinner

import (
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/willow3d/linear"
	"github.com/phanxgames/willow3d/palette"
)

// ErrInvalidConfig is returned by New for configurations that cannot animate.
var ErrInvalidConfig = errors.New("spinner: invalid config")

const (
	DefaultIdleSpeed  = 0.2
	DefaultHoverSpeed = 1.0
	DefaultClickScale = 1.2
)

// Transform is the visual state an object hands to its renderer.
// Rotation is in radians.
type Transform struct {
	Position linear.Vec3
	Rotation linear.Vec3
	Scale    linear.Vec3
}

// Interaction is the pair of flags driven by pointer events.
type Interaction struct {
	Hovered bool
	Clicked bool
}

// Enter returns s with the pointer over the object.
func Enter(s Interaction) Interaction {
	s.Hovered = true
	return s
}

// Leave returns s with the pointer off the object.
func Leave(s Interaction) Interaction {
	s.Hovered = false
	return s
}

// Click returns s with the clicked flag flipped.
func Click(s Interaction) Interaction {
	s.Clicked = !s.Clicked
	return s
}

// Wobble moves one position axis along a sine of the elapsed time:
// Amplitude*sin(Frequency*elapsed) + base, where base is the configured
// position on that axis. Zero Amplitude or Frequency mean 1.
type Wobble struct {
	Axis      linear.Axis
	Amplitude float64
	Frequency float64
}

// Config holds the literal construction parameters of an object.
type Config struct {
	Position linear.Vec3
	Rotation linear.Vec3

	// Spin weights the rotation per axis. The zero value spins about Y.
	Spin linear.Vec3

	// IdleSpeed and HoverSpeed are in radians per second. A nil IdleSpeed
	// or zero HoverSpeed means the package default; use Rate(0) for an
	// object that only turns while hovered.
	IdleSpeed  *float64
	HoverSpeed float64

	Palette palette.Pair

	// ClickScale is the uniform scale applied while clicked. Zero means
	// DefaultClickScale.
	ClickScale float64

	Wobble *Wobble
}

// Object is a single frame-driven shape. It is not safe for concurrent use;
// the host calls it from its one update goroutine.
type Object struct {
	cfg         Config
	transform   Transform
	interaction Interaction
}

// New validates cfg, fills in defaults and returns an object at rest.
func New(cfg Config) (*Object, error) {
	if cfg.Spin == (linear.Vec3{}) {
		cfg.Spin = linear.Vec3{0, 1, 0}
	}
	idle := DefaultIdleSpeed
	if cfg.IdleSpeed != nil {
		idle = *cfg.IdleSpeed
	}
	cfg.IdleSpeed = &idle
	if cfg.HoverSpeed == 0 {
		cfg.HoverSpeed = DefaultHoverSpeed
	}
	if cfg.ClickScale == 0 {
		cfg.ClickScale = DefaultClickScale
	}
	if cfg.Wobble != nil {
		w := *cfg.Wobble
		if w.Amplitude == 0 {
			w.Amplitude = 1
		}
		if w.Frequency == 0 {
			w.Frequency = 1
		}
		cfg.Wobble = &w
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	o := &Object{cfg: cfg}
	o.transform = Transform{
		Position: cfg.Position,
		Rotation: cfg.Rotation,
		Scale:    linear.Splat(1),
	}
	return o, nil
}

func validate(cfg Config) error {
	for _, v := range []struct {
		name string
		vec  linear.Vec3
	}{{"position", cfg.Position}, {"rotation", cfg.Rotation}, {"spin", cfg.Spin}} {
		if !v.vec.IsFinite() {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalidConfig, v.name, v.vec)
		}
	}
	idle := *cfg.IdleSpeed
	if !finite(idle) || !finite(cfg.HoverSpeed) {
		return fmt.Errorf("%w: speeds must be finite", ErrInvalidConfig)
	}
	if idle < 0 {
		return fmt.Errorf("%w: idle speed %v is negative", ErrInvalidConfig, idle)
	}
	if cfg.HoverSpeed <= idle {
		return fmt.Errorf("%w: hover speed %v must exceed idle speed %v",
			ErrInvalidConfig, cfg.HoverSpeed, idle)
	}
	if !finite(cfg.ClickScale) || cfg.ClickScale <= 0 {
		return fmt.Errorf("%w: click scale %v must be positive", ErrInvalidConfig, cfg.ClickScale)
	}
	if w := cfg.Wobble; w != nil {
		if !w.Axis.Valid() {
			return fmt.Errorf("%w: wobble axis %d", ErrInvalidConfig, w.Axis)
		}
		if !finite(w.Amplitude) || !finite(w.Frequency) {
			return fmt.Errorf("%w: wobble parameters must be finite", ErrInvalidConfig)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Update advances the object by one frame and returns its transform.
// Rotation grows by Spin*delta*Speed(). The wobble axis, if any, depends only
// on elapsed, so calling Update twice with the same elapsed and a zero delta
// is a no-op. Negative deltas are treated as zero.
func (o *Object) Update(elapsed, delta float64) Transform {
	if delta > 0 {
		o.transform.Rotation = o.transform.Rotation.Add(o.cfg.Spin.Scale(delta * o.Speed()))
	}
	if w := o.cfg.Wobble; w != nil {
		o.transform.Position[w.Axis] = w.Amplitude*math.Sin(w.Frequency*elapsed) + o.cfg.Position[w.Axis]
	}
	return o.transform
}

// Speed returns the current rotation speed.
func (o *Object) Speed() float64 {
	if o.interaction.Hovered {
		return o.cfg.HoverSpeed
	}
	return *o.cfg.IdleSpeed
}

// Rate returns a pointer to v for Config.IdleSpeed.
func Rate(v float64) *float64 { return &v }

// Color returns the palette entry for the current hover state.
func (o *Object) Color() palette.Color {
	return o.cfg.Palette.Pick(o.interaction.Hovered)
}

// Enter marks the object as hovered.
func (o *Object) Enter() Interaction { return o.apply(Enter) }

// Leave clears the hovered flag.
func (o *Object) Leave() Interaction { return o.apply(Leave) }

// Click toggles the clicked flag and the enlarged scale.
func (o *Object) Click() Interaction { return o.apply(Click) }

func (o *Object) apply(fn func(Interaction) Interaction) Interaction {
	o.interaction = fn(o.interaction)
	if o.interaction.Clicked {
		o.transform.Scale = linear.Splat(o.cfg.ClickScale)
	} else {
		o.transform.Scale = linear.Splat(1)
	}
	return o.interaction
}

// Interaction returns the current interaction flags.
func (o *Object) Interaction() Interaction { return o.interaction }

// Transform returns the current transform without advancing time.
func (o *Object) Transform() Transform { return o.transform }

// Config returns the object's configuration with defaults applied.
func (o *Object) Config() Config {
	cfg := o.cfg
	cfg.IdleSpeed = Rate(*o.cfg.IdleSpeed)
	return cfg
}
