package willow3d

import (
	"math"

	"github.com/phanxgames/willow3d/linear"
)

// computeLocalTransform computes the local matrix from the node's
// transform properties.
//
// Composition order:
//
//	Scale -> Rotate (X, Y, Z) -> Translate(Position)
func computeLocalTransform(n *Node) linear.M4 {
	return linear.Compose(n.Position, n.Rotation, n.Scale)
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform linear.M4, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = parentTransform.Mul(local)
		n.transformDirty = false
		n.worldVertsDirty = true
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// refreshWorldVerts transforms the node's geometry into world space if the
// transform or geometry changed since the last call, and updates the
// world-space bounding sphere used for picking.
func (n *Node) refreshWorldVerts() []Vec3 {
	g := n.Geometry
	if g == nil {
		n.worldVerts = n.worldVerts[:0]
		return n.worldVerts
	}
	if !n.worldVertsDirty && len(n.worldVerts) == len(g.Vertices) {
		return n.worldVerts
	}
	if cap(n.worldVerts) < len(g.Vertices) {
		n.worldVerts = make([]Vec3, len(g.Vertices))
	}
	n.worldVerts = n.worldVerts[:len(g.Vertices)]
	m := n.worldTransform
	for i, v := range g.Vertices {
		n.worldVerts[i] = m.Point(v)
	}
	n.worldCenter = m.Point(g.Center)
	n.worldRadius = g.Radius * maxAxisScale(m)
	n.worldVertsDirty = false
	return n.worldVerts
}

// maxAxisScale returns the largest length among the matrix basis columns.
func maxAxisScale(m linear.M4) float64 {
	var best float64
	for c := 0; c < 3; c++ {
		best = math.Max(best, m.Basis(c).Len())
	}
	return best
}

// --- Transform property setters ---

// SetPosition sets the node's local position and marks it dirty.
func (n *Node) SetPosition(p Vec3) {
	n.Position = p
	n.transformDirty = true
}

// SetRotation sets the node's Euler rotation (radians) and marks it dirty.
func (n *Node) SetRotation(r Vec3) {
	n.Rotation = r
	n.transformDirty = true
}

// SetScale sets the node's per-axis scale and marks it dirty.
func (n *Node) SetScale(s Vec3) {
	n.Scale = s
	n.transformDirty = true
}

// SetTransform sets position, rotation and scale at once.
func (n *Node) SetTransform(position, rotation, scale Vec3) {
	n.Position = position
	n.Rotation = rotation
	n.Scale = scale
	n.transformDirty = true
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Coordinate conversion ---

// WorldMatrix returns the world transform computed on the last update.
func (n *Node) WorldMatrix() linear.M4 {
	return n.worldTransform
}

// WorldPosition returns the node's origin in world space.
func (n *Node) WorldPosition() Vec3 {
	return n.worldTransform.Translation()
}

// LocalToWorld converts a local-space point to world space.
func (n *Node) LocalToWorld(p Vec3) Vec3 {
	return n.worldTransform.Point(p)
}
