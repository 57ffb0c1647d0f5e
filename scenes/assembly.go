// Package scenes declares the demo assemblies: fixed lists of spinning
// shapes and lights with literal parameters, and Build, which turns one into
// nodes and lights on a willow3d.Scene.
package scenes

import (
	"errors"
	"fmt"
	"sort"

	"github.com/phanxgames/willow3d"
	"github.com/phanxgames/willow3d/linear"
	"github.com/phanxgames/willow3d/palette"
	"github.com/phanxgames/willow3d/spinner"
	"github.com/phanxgames/willow3d/tunables"
)

// ErrUnknownAssembly is returned by ByName.
var ErrUnknownAssembly = errors.New("scenes: unknown assembly")

// Shape is the literal geometry of an object. Which fields apply depends on
// Kind; see the constructors below.
type Shape struct {
	Kind willow3d.GeometryKind

	// Size holds the box edge lengths.
	Size linear.Vec3

	Radius float64
	Tube   float64

	// Segments is (width, height) for spheres, (radial, tubular) for tori and
	// (tubular, radial) for torus knots.
	Segments [2]int

	// P and Q wind the torus knot. Zero means 2 and 3.
	P, Q int
}

// BoxShape is an axis-aligned box.
func BoxShape(size linear.Vec3) Shape {
	return Shape{Kind: willow3d.GeometryBox, Size: size}
}

// SphereShape is a UV sphere.
func SphereShape(radius float64, widthSegments, heightSegments int) Shape {
	return Shape{Kind: willow3d.GeometrySphere, Radius: radius, Segments: [2]int{widthSegments, heightSegments}}
}

// TorusShape is a ring torus.
func TorusShape(radius, tube float64, radialSegments, tubularSegments int) Shape {
	return Shape{Kind: willow3d.GeometryTorus, Radius: radius, Tube: tube, Segments: [2]int{radialSegments, tubularSegments}}
}

// KnotShape is a (2,3) torus knot.
func KnotShape(radius, tube float64, tubularSegments, radialSegments int) Shape {
	return Shape{Kind: willow3d.GeometryTorusKnot, Radius: radius, Tube: tube, Segments: [2]int{tubularSegments, radialSegments}}
}

// Geometry tessellates the shape.
func (s Shape) Geometry() (*willow3d.Geometry, error) {
	switch s.Kind {
	case willow3d.GeometryBox:
		return willow3d.NewBox(s.Size)
	case willow3d.GeometrySphere:
		return willow3d.NewSphere(s.Radius, s.Segments[0], s.Segments[1])
	case willow3d.GeometryTorus:
		return willow3d.NewTorus(s.Radius, s.Tube, s.Segments[0], s.Segments[1])
	case willow3d.GeometryTorusKnot:
		return willow3d.NewTorusKnot(s.Radius, s.Tube, s.Segments[0], s.Segments[1], s.P, s.Q)
	case willow3d.GeometryOctahedron:
		return willow3d.NewOctahedron(s.Radius)
	}
	return nil, fmt.Errorf("%w: unknown kind %d", willow3d.ErrInvalidGeometry, s.Kind)
}

// ObjectSpec is one frame-driven shape of an assembly.
type ObjectSpec struct {
	Name    string
	Shape   Shape
	Spinner spinner.Config
}

// LightSpec is one static light.
type LightSpec struct {
	Name      string
	Kind      willow3d.LightKind
	Position  linear.Vec3
	Intensity float64
	// Color defaults to white.
	Color palette.Color
	// Helper adds a marker at the light's position. Ignored for ambient
	// lights.
	Helper bool
	// Tunable lights take their color and intensity from the panel.
	Tunable bool
}

// PanelBinding names the panel parameters an assembly reads. An empty name
// leaves that value at its literal.
type PanelBinding struct {
	// Color and Intensity drive every tunable light.
	Color     string
	Intensity string
	// Radius replaces the radius of every sphere.
	Radius string
}

// PanelParams is the parameter schema the demo panel is built from.
func PanelParams() []tunables.Param {
	return []tunables.Param{
		tunables.Color("color", "white"),
		tunables.Float("intensity", 1, 0, 5, 0.1),
		tunables.Float("radius", 1, 0.1, 3, 0.05),
	}
}

// Assembly is the static declaration of a demo.
type Assembly struct {
	Name    string
	Objects []ObjectSpec
	Lights  []LightSpec

	// Eye moves the camera; the zero value keeps the default.
	Eye linear.Vec3

	// Group wraps the objects in a container with its own hover handlers.
	Group bool

	Panel *PanelBinding
}

func pair(hovered, idle string) palette.Pair {
	return palette.Pair{palette.MustParse(hovered), palette.MustParse(idle)}
}

// TorusKnot is the original demo: one knot over three lights.
func TorusKnot() Assembly {
	return Assembly{
		Name: "torusknot",
		Objects: []ObjectSpec{{
			Name:  "torusKnot",
			Shape: KnotShape(1, 0.4, 32, 32),
			Spinner: spinner.Config{
				Position: linear.Vec3{0, 0, 0},
				Palette:  pair("skyBlue", "red"),
			},
		}},
		Lights: []LightSpec{
			{Kind: willow3d.LightDirectional, Position: linear.Vec3{2, 2, 0}, Intensity: 1},
			{Kind: willow3d.LightDirectional, Position: linear.Vec3{-2, -1, 0}, Intensity: 1},
			{Kind: willow3d.LightAmbient, Intensity: 0.8},
		},
	}
}

// Cube is a box that bobs along z while it spins.
func Cube() Assembly {
	return Assembly{
		Name: "cube",
		Objects: []ObjectSpec{{
			Name:  "cube",
			Shape: BoxShape(linear.Vec3{1, 1, 1}),
			Spinner: spinner.Config{
				Position: linear.Vec3{1, 2, -2},
				Spin:     linear.Vec3{1, 1, 0},
				Palette:  pair("hotpink", "orange"),
				Wobble:   &spinner.Wobble{Axis: linear.AxisZ},
			},
		}},
		Lights: []LightSpec{
			{Kind: willow3d.LightDirectional, Position: linear.Vec3{0, 0, 2}, Intensity: 0.5},
			{Kind: willow3d.LightAmbient, Intensity: 0.1},
		},
	}
}

// Sphere is a panel-driven sphere under one tunable light.
func Sphere() Assembly {
	return Assembly{
		Name: "sphere",
		Objects: []ObjectSpec{{
			Name:  "sphere",
			Shape: SphereShape(1, 32, 16),
			Spinner: spinner.Config{
				Palette: pair("gold", "royalblue"),
			},
		}},
		Lights: []LightSpec{
			{Name: "key", Kind: willow3d.LightDirectional, Position: linear.Vec3{2, 2, 0}, Intensity: 1, Helper: true, Tunable: true},
			{Kind: willow3d.LightAmbient, Intensity: 0.3},
		},
		Panel: &PanelBinding{Color: "color", Intensity: "intensity", Radius: "radius"},
	}
}

// Torus is a tilted ring that grows a little more than the others when
// clicked.
func Torus() Assembly {
	return Assembly{
		Name: "torus",
		Objects: []ObjectSpec{{
			Name:  "torus",
			Shape: TorusShape(1, 0.3, 16, 48),
			Spinner: spinner.Config{
				Rotation:   linear.Vec3{0.4, 0, 0},
				Spin:       linear.Vec3{1, 0, 0},
				Palette:    pair("limegreen", "violet"),
				ClickScale: 1.5,
			},
		}},
		Lights: []LightSpec{
			{Kind: willow3d.LightDirectional, Position: linear.Vec3{2, 2, 2}, Intensity: 1},
			{Kind: willow3d.LightAmbient, Intensity: 0.5},
		},
	}
}

// Gallery puts all four shapes side by side inside one group.
func Gallery() Assembly {
	return Assembly{
		Name: "gallery",
		Objects: []ObjectSpec{
			{
				Name:  "cube",
				Shape: BoxShape(linear.Vec3{0.9, 0.9, 0.9}),
				Spinner: spinner.Config{
					Position: linear.Vec3{-3, 0, 0},
					Spin:     linear.Vec3{1, 1, 0},
					Palette:  pair("hotpink", "orange"),
					Wobble:   &spinner.Wobble{Axis: linear.AxisY, Amplitude: 0.5},
				},
			},
			{
				Name:    "sphere",
				Shape:   SphereShape(0.6, 24, 12),
				Spinner: spinner.Config{Position: linear.Vec3{-1, 0, 0}, Palette: pair("gold", "royalblue")},
			},
			{
				Name:  "torus",
				Shape: TorusShape(0.5, 0.2, 12, 32),
				Spinner: spinner.Config{
					Position: linear.Vec3{1, 0, 0},
					Spin:     linear.Vec3{1, 0, 0},
					Palette:  pair("limegreen", "violet"),
				},
			},
			{
				Name:    "torusKnot",
				Shape:   KnotShape(0.5, 0.15, 64, 8),
				Spinner: spinner.Config{Position: linear.Vec3{3, 0, 0}, Palette: pair("skyBlue", "red")},
			},
		},
		Lights: []LightSpec{
			{Name: "key", Kind: willow3d.LightDirectional, Position: linear.Vec3{2, 2, 0}, Intensity: 1, Helper: true, Tunable: true},
			{Name: "fill", Kind: willow3d.LightDirectional, Position: linear.Vec3{-2, -1, 0}, Intensity: 1, Helper: true, Tunable: true},
			{Kind: willow3d.LightAmbient, Intensity: 0.4},
		},
		Eye:   linear.Vec3{0, 0, 8},
		Group: true,
		Panel: &PanelBinding{Color: "color", Intensity: "intensity"},
	}
}

var registry = map[string]func() Assembly{
	"torusknot": TorusKnot,
	"cube":      Cube,
	"sphere":    Sphere,
	"torus":     Torus,
	"gallery":   Gallery,
}

// ByName returns the assembly registered under name.
func ByName(name string) (Assembly, error) {
	fn, ok := registry[name]
	if !ok {
		return Assembly{}, fmt.Errorf("%w: %q", ErrUnknownAssembly, name)
	}
	return fn(), nil
}

// Names lists the registered assemblies in alphabetical order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
