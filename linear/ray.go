package linear

import "math"

// Ray is a half-line starting at Origin and extending along Dir.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// At returns the point at distance t along r.
func (r Ray) At(t float64) Vec3 { return r.Origin.Add(r.Dir.Scale(t)) }

const rayEpsilon = 1e-9

// IntersectTriangle tests r against the triangle (a, b, c) using the
// Möller–Trumbore algorithm. Both faces are hit. It returns the distance
// along r and whether the triangle was hit in front of the origin.
func (r Ray) IntersectTriangle(a, b, c Vec3) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}

// IntersectSphere reports whether r passes within radius of center.
// Used as a broad-phase test before per-triangle checks.
func (r Ray) IntersectSphere(center Vec3, radius float64) bool {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	dd := r.Dir.Dot(r.Dir)
	disc := b*b - dd*c
	if disc < 0 {
		return false
	}
	// Both roots behind the origin.
	return -b+math.Sqrt(disc) >= 0
}
