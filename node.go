package willow3d

import (
	"github.com/phanxgames/willow3d/linear"
)

// --- Callback contexts ---

// propagation is shared by every context built for one bubbling dispatch.
type propagation struct {
	stopped bool
}

// PointerContext carries pointer event data.
type PointerContext struct {
	// Node is the node the event was originally targeted at.
	Node *Node
	// Current is the node whose handler is running; differs from Node
	// while the event bubbles through ancestors.
	Current  *Node
	EntityID uint32
	UserData any
	ScreenX  float64
	ScreenY  float64
	// Point is the world-space hit point on Node; zero when Node is nil.
	Point     Vec3
	Distance  float64
	Button    MouseButton
	PointerID int
	Modifiers KeyModifiers

	prop *propagation
}

// StopPropagation prevents the event from reaching the ancestors of the
// current node. Handlers already running on the current node still finish.
func (c PointerContext) StopPropagation() {
	if c.prop != nil {
		c.prop.stopped = true
	}
}

// ClickContext carries click event data.
type ClickContext = PointerContext

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, willow3d is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local). Rotation is in radians, applied X then Y then Z.
	Position Vec3
	Rotation Vec3
	Scale    Vec3

	// Computed (unexported, updated during traversal)
	worldTransform linear.M4
	transformDirty bool

	// Visibility & interaction
	Visible    bool
	Renderable bool
	// Interactable makes this mesh a pointer target. It does not affect
	// descendants.
	Interactable bool

	// Metadata
	UserData any
	EntityID uint32

	// Mesh fields (NodeTypeMesh)
	Geometry *Geometry
	Color    Color
	// Unlit meshes ignore scene lights and draw in their flat Color.
	Unlit bool

	worldVerts      []Vec3
	worldVertsDirty bool
	worldCenter     Vec3
	worldRadius     float64

	// Per-node callbacks (nil by default; zero cost when unused)
	OnUpdate       func(FrameContext)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	// Internal
	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Scale = linear.Splat(1)
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.worldTransform = linear.Identity()
}

// NewContainer creates a group node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewMesh creates a mesh node drawing geom in the given color. Mesh nodes
// are interactable by default.
func NewMesh(name string, geom *Geometry, color Color) *Node {
	n := &Node{
		Name:            name,
		Type:            NodeTypeMesh,
		Geometry:        geom,
		worldVertsDirty: true,
	}
	nodeDefaults(n)
	n.Color = color
	n.Interactable = true
	return n
}

// SetGeometry swaps the mesh geometry, e.g. after a size parameter changed.
func (n *Node) SetGeometry(g *Geometry) {
	n.Geometry = g
	n.worldVertsDirty = true
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("willow3d: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("willow3d: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("willow3d: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// FindChild returns the first descendant with the given name, depth-first,
// or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Geometry = nil
	n.worldVerts = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
