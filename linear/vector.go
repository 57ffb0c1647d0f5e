// Package linear wraps the small amount of mgl64 math the scene graph needs
// and adds the ray tests mgl64 lacks.
//
// Vectors and matrices are fixed-size arrays, so a tuple of the wrong arity
// is a compile error rather than a runtime surprise.
package linear

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is a 3-component vector of float64. It converts freely to and from
// mgl64.Vec3.
type Vec3 mgl64.Vec3

// Axis indexes a component of a Vec3.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Valid reports whether a indexes a Vec3 component.
func (a Axis) Valid() bool { return a >= AxisX && a <= AxisZ }

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "invalid"
}

// Splat returns a vector with all components set to s.
func Splat(s float64) Vec3 { return Vec3{s, s, s} }

func (v Vec3) mgl() mgl64.Vec3 { return mgl64.Vec3(v) }

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3(v.mgl().Add(w.mgl())) }

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3(v.mgl().Sub(w.mgl())) }

// Scale returns s ⋅ v.
func (v Vec3) Scale(s float64) Vec3 { return Vec3(v.mgl().Mul(s)) }

// Mul returns the component-wise product of v and w.
func (v Vec3) Mul(w Vec3) Vec3 {
	return Vec3{v[0] * w[0], v[1] * w[1], v[2] * w[2]}
}

// Dot returns v ⋅ w.
func (v Vec3) Dot(w Vec3) float64 { return v.mgl().Dot(w.mgl()) }

// Cross returns v × w.
func (v Vec3) Cross(w Vec3) Vec3 { return Vec3(v.mgl().Cross(w.mgl())) }

// Len returns the length of v.
func (v Vec3) Len() float64 { return v.mgl().Len() }

// Norm returns v normalized. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	if v == (Vec3{}) {
		return v
	}
	return Vec3(v.mgl().Normalize())
}

// MaxComponent returns the largest absolute component of v.
func (v Vec3) MaxComponent() float64 {
	return math.Max(math.Abs(v[0]), math.Max(math.Abs(v[1]), math.Abs(v[2])))
}

// IsFinite reports whether no component of v is NaN or infinite.
func (v Vec3) IsFinite() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Lerp returns the linear interpolation between v and w at t.
func (v Vec3) Lerp(w Vec3, t float64) Vec3 {
	return v.Add(w.Sub(v).Scale(t))
}
