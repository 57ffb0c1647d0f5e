package willow3d

import (
	"errors"
	"fmt"
	"math"

	"github.com/phanxgames/willow3d/linear"
)

// ErrInvalidGeometry is returned by the geometry constructors for sizes or
// segment counts that cannot produce a mesh.
var ErrInvalidGeometry = errors.New("willow3d: invalid geometry")

// maxGeometryVertices keeps indices within uint16.
const maxGeometryVertices = math.MaxUint16 + 1

// GeometryKind names the primitive a Geometry was generated from.
type GeometryKind uint8

const (
	GeometryBox GeometryKind = iota
	GeometrySphere
	GeometryTorus
	GeometryTorusKnot
	GeometryOctahedron
)

func (k GeometryKind) String() string {
	switch k {
	case GeometryBox:
		return "box"
	case GeometrySphere:
		return "sphere"
	case GeometryTorus:
		return "torus"
	case GeometryTorusKnot:
		return "torusKnot"
	case GeometryOctahedron:
		return "octahedron"
	}
	return "unknown"
}

// Geometry is an indexed triangle mesh in local space. Triangles wind
// counter-clockwise when seen from outside.
type Geometry struct {
	Kind     GeometryKind
	Vertices []Vec3
	Indices  []uint16

	// Center and Radius bound every vertex.
	Center Vec3
	Radius float64
}

// NumTriangles returns the number of triangles in g.
func (g *Geometry) NumTriangles() int {
	return len(g.Indices) / 3
}

func (g *Geometry) computeBounds() {
	if len(g.Vertices) == 0 {
		return
	}
	lo, hi := g.Vertices[0], g.Vertices[0]
	for _, v := range g.Vertices[1:] {
		for i := range v {
			lo[i] = math.Min(lo[i], v[i])
			hi[i] = math.Max(hi[i], v[i])
		}
	}
	g.Center = lo.Add(hi).Scale(0.5)
	var r float64
	for _, v := range g.Vertices {
		r = math.Max(r, v.Sub(g.Center).Len())
	}
	g.Radius = r
}

func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidGeometry, name, v)
	}
	return nil
}

func segments(name string, v, min int) error {
	if v < min {
		return fmt.Errorf("%w: %s must be at least %d, got %d", ErrInvalidGeometry, name, min, v)
	}
	return nil
}

func vertexBudget(n int) error {
	if n > maxGeometryVertices {
		return fmt.Errorf("%w: %d vertices exceeds the limit of %d", ErrInvalidGeometry, n, maxGeometryVertices)
	}
	return nil
}

// boxFaces lists each face as (normal, u, v) with u × v = normal.
var boxFaces = [6][3]Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// NewBox returns an axis-aligned box centered at the origin with the given
// width, height and depth.
func NewBox(size Vec3) (*Geometry, error) {
	for i, name := range [3]string{"width", "height", "depth"} {
		if err := positive(name, size[i]); err != nil {
			return nil, err
		}
	}
	half := size.Scale(0.5)
	g := &Geometry{
		Kind:     GeometryBox,
		Vertices: make([]Vec3, 0, 24),
		Indices:  make([]uint16, 0, 36),
	}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		base := uint16(len(g.Vertices))
		for _, c := range [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := n.Add(u.Scale(c[0])).Add(v.Scale(c[1]))
			g.Vertices = append(g.Vertices, p.Mul(half))
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	g.computeBounds()
	return g, nil
}

// NewSphere returns a UV sphere. widthSegments must be at least 3 and
// heightSegments at least 2.
func NewSphere(radius float64, widthSegments, heightSegments int) (*Geometry, error) {
	if err := positive("radius", radius); err != nil {
		return nil, err
	}
	if err := segments("width segments", widthSegments, 3); err != nil {
		return nil, err
	}
	if err := segments("height segments", heightSegments, 2); err != nil {
		return nil, err
	}
	if err := vertexBudget((widthSegments + 1) * (heightSegments + 1)); err != nil {
		return nil, err
	}

	g := &Geometry{Kind: GeometrySphere}
	grid := make([][]uint16, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint16, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			sinT, cosT := math.Sincos(v * math.Pi)
			sinP, cosP := math.Sincos(u * 2 * math.Pi)
			row[ix] = uint16(len(g.Vertices))
			g.Vertices = append(g.Vertices, Vec3{
				-radius * cosP * sinT,
				radius * cosT,
				radius * sinP * sinT,
			})
		}
		grid[iy] = row
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// The pole rows collapse to a point; skip their degenerate halves.
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	g.computeBounds()
	return g, nil
}

// NewTorus returns a ring of the given radius around the Z axis with a tube
// of radius tube.
func NewTorus(radius, tube float64, radialSegments, tubularSegments int) (*Geometry, error) {
	if err := positive("radius", radius); err != nil {
		return nil, err
	}
	if err := positive("tube", tube); err != nil {
		return nil, err
	}
	if err := segments("radial segments", radialSegments, 2); err != nil {
		return nil, err
	}
	if err := segments("tubular segments", tubularSegments, 3); err != nil {
		return nil, err
	}
	if err := vertexBudget((radialSegments + 1) * (tubularSegments + 1)); err != nil {
		return nil, err
	}

	g := &Geometry{Kind: GeometryTorus}
	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		sinV, cosV := math.Sincos(v)
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			sinU, cosU := math.Sincos(u)
			g.Vertices = append(g.Vertices, Vec3{
				(radius + tube*cosV) * cosU,
				(radius + tube*cosV) * sinU,
				tube * sinV,
			})
		}
	}
	stride := tubularSegments + 1
	g.Indices = gridIndices(radialSegments, tubularSegments, stride)
	g.computeBounds()
	return g, nil
}

// gridIndices triangulates a (rows+1) x (cols+1) vertex grid laid out
// row-major with the given stride.
func gridIndices(rows, cols, stride int) []uint16 {
	idx := make([]uint16, 0, rows*cols*6)
	for j := 1; j <= rows; j++ {
		for i := 1; i <= cols; i++ {
			a := uint16(stride*j + i - 1)
			b := uint16(stride*(j-1) + i - 1)
			c := uint16(stride*(j-1) + i)
			d := uint16(stride*j + i)
			idx = append(idx, a, b, d, b, c, d)
		}
	}
	return idx
}

// NewTorusKnot returns a (p, q) torus knot: the tube winds p times around
// the axis of rotational symmetry and q times around the torus interior.
// Arguments follow the usual (radius, tube, tubularSegments, radialSegments)
// order; p and q default to 2 and 3 when zero.
func NewTorusKnot(radius, tube float64, tubularSegments, radialSegments, p, q int) (*Geometry, error) {
	if p == 0 {
		p = 2
	}
	if q == 0 {
		q = 3
	}
	if err := positive("radius", radius); err != nil {
		return nil, err
	}
	if err := positive("tube", tube); err != nil {
		return nil, err
	}
	if err := segments("tubular segments", tubularSegments, 3); err != nil {
		return nil, err
	}
	if err := segments("radial segments", radialSegments, 3); err != nil {
		return nil, err
	}
	if p < 1 || q < 1 {
		return nil, fmt.Errorf("%w: p and q must be positive, got %d, %d", ErrInvalidGeometry, p, q)
	}
	if err := vertexBudget((tubularSegments + 1) * (radialSegments + 1)); err != nil {
		return nil, err
	}

	curve := func(u float64) Vec3 {
		sinU, cosU := math.Sincos(u)
		quOverP := float64(q) / float64(p) * u
		cs := math.Cos(quOverP)
		return Vec3{
			radius * (2 + cs) * 0.5 * cosU,
			radius * (2 + cs) * sinU * 0.5,
			radius * math.Sin(quOverP) * 0.5,
		}
	}

	g := &Geometry{Kind: GeometryTorusKnot}
	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments) * float64(p) * 2 * math.Pi
		p1 := curve(u)
		p2 := curve(u + 0.01)

		// Frenet-like frame along the curve.
		t := p2.Sub(p1)
		n := p2.Add(p1)
		b := t.Cross(n)
		n = b.Cross(t)
		b = b.Norm()
		n = n.Norm()

		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			sinV, cosV := math.Sincos(v)
			cx := -tube * cosV
			cy := tube * sinV
			g.Vertices = append(g.Vertices, p1.Add(n.Scale(cx)).Add(b.Scale(cy)))
		}
	}
	g.Indices = knotIndices(tubularSegments, radialSegments)
	g.computeBounds()
	return g, nil
}

func knotIndices(tubular, radial int) []uint16 {
	idx := make([]uint16, 0, tubular*radial*6)
	stride := radial + 1
	for j := 1; j <= tubular; j++ {
		for i := 1; i <= radial; i++ {
			a := uint16(stride*(j-1) + (i - 1))
			b := uint16(stride*j + (i - 1))
			c := uint16(stride*j + i)
			d := uint16(stride*(j-1) + i)
			idx = append(idx, a, b, d, b, c, d)
		}
	}
	return idx
}

// NewOctahedron returns a regular octahedron with vertices at distance
// radius on each axis. Used for light helpers.
func NewOctahedron(radius float64) (*Geometry, error) {
	if err := positive("radius", radius); err != nil {
		return nil, err
	}
	g := &Geometry{
		Kind: GeometryOctahedron,
		Vertices: []Vec3{
			{radius, 0, 0}, {-radius, 0, 0},
			{0, radius, 0}, {0, -radius, 0},
			{0, 0, radius}, {0, 0, -radius},
		},
	}
	for _, sx := range [2]uint16{0, 1} {
		for _, sy := range [2]uint16{2, 3} {
			for _, sz := range [2]uint16{4, 5} {
				// An odd number of negative axes flips the winding.
				neg := (sx & 1) + (sy & 1) + (sz & 1)
				if neg%2 == 0 {
					g.Indices = append(g.Indices, sx, sy, sz)
				} else {
					g.Indices = append(g.Indices, sx, sz, sy)
				}
			}
		}
	}
	g.computeBounds()
	return g, nil
}

// MustGeometry panics if err is non-nil. Intended for literal shapes whose
// parameters are known to be valid.
func MustGeometry(g *Geometry, err error) *Geometry {
	if err != nil {
		panic(err)
	}
	return g
}

// faceNormal returns the unnormalized normal of a CCW triangle.
func faceNormal(a, b, c Vec3) linear.Vec3 {
	return b.Sub(a).Cross(c.Sub(a))
}
