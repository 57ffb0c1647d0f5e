package willow3d

import (
	"math"

	"github.com/phanxgames/willow3d/linear"
)

// LightKind distinguishes how a Light contributes to mesh shading.
type LightKind uint8

const (
	// LightAmbient adds a constant term to every face.
	LightAmbient LightKind = iota
	// LightDirectional shines from Position toward the world origin.
	LightDirectional
)

func (k LightKind) String() string {
	switch k {
	case LightAmbient:
		return "ambient"
	case LightDirectional:
		return "directional"
	}
	return "unknown"
}

// Light is a scene light. Lights are plain values owned by the Scene; edit
// the fields directly and the next Draw picks them up.
type Light struct {
	Name string
	Kind LightKind
	// Position is only used by directional lights.
	Position Vec3
	// Intensity scales Color. Zero turns the light off without removing it.
	Intensity float64
	Color     Color
	// Enabled determines whether this light is applied during Draw.
	Enabled bool
}

// NewAmbientLight creates an enabled white ambient light.
func NewAmbientLight(intensity float64) *Light {
	return &Light{
		Name:      "ambient",
		Kind:      LightAmbient,
		Intensity: intensity,
		Color:     ColorWhite,
		Enabled:   true,
	}
}

// NewDirectionalLight creates an enabled white directional light placed at
// pos and aimed at the origin.
func NewDirectionalLight(pos Vec3, intensity float64) *Light {
	return &Light{
		Name:      "directional",
		Kind:      LightDirectional,
		Position:  pos,
		Intensity: intensity,
		Color:     ColorWhite,
		Enabled:   true,
	}
}

// direction returns the unit vector pointing from a lit surface toward the
// light.
func (l *Light) direction() Vec3 {
	return l.Position.Norm()
}

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l *Light) {
	s.lights = append(s.lights, l)
}

// RemoveLight removes a light from the scene. No-op if absent.
func (s *Scene) RemoveLight(l *Light) {
	for i, existing := range s.lights {
		if existing == l {
			copy(s.lights[i:], s.lights[i+1:])
			s.lights[len(s.lights)-1] = nil
			s.lights = s.lights[:len(s.lights)-1]
			return
		}
	}
}

// Lights returns the scene's lights. The returned slice MUST NOT be mutated.
func (s *Scene) Lights() []*Light {
	return s.lights
}

// shade returns the lit color of a face with unit world-space normal n.
// With no enabled lights the base color is returned unchanged.
func shade(base Color, n Vec3, lights []*Light) Color {
	var r, g, b float64
	lit := false
	for _, l := range lights {
		if !l.Enabled {
			continue
		}
		lit = true
		var k float64
		switch l.Kind {
		case LightAmbient:
			k = l.Intensity
		case LightDirectional:
			k = l.Intensity * math.Max(0, n.Dot(l.direction()))
		}
		r += k * l.Color.R
		g += k * l.Color.G
		b += k * l.Color.B
	}
	if !lit {
		return base
	}
	return Color{R: base.R * r, G: base.G * g, B: base.B * b, A: base.A}.Clamp()
}

// lightHelperSize is the octahedron radius used by NewLightHelper.
const lightHelperSize = 0.15

// NewLightHelper returns an unlit marker mesh that follows l's position and
// color every frame. Helpers are not pointer targets.
func NewLightHelper(l *Light) *Node {
	n := NewMesh(l.Name+"_helper", MustGeometry(NewOctahedron(lightHelperSize)), l.Color)
	n.Unlit = true
	n.Interactable = false
	n.Position = l.Position
	n.OnUpdate = func(FrameContext) {
		if n.Position != l.Position {
			n.SetPosition(l.Position)
		}
		n.Color = l.Color
		n.Visible = l.Enabled
	}
	return n
}

// unitFaceNormal returns the unit normal of a world-space triangle.
func unitFaceNormal(a, b, c Vec3) (linear.Vec3, bool) {
	n := faceNormal(a, b, c)
	l := n.Len()
	if l == 0 {
		return n, false
	}
	return n.Scale(1 / l), true
}
