package willow3d

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
	if n.Interactable {
		t.Error("containers should not be interactable by default")
	}
}

func TestNewMeshDefaults(t *testing.T) {
	g := MustGeometry(NewBox(Vec3{1, 1, 1}))
	red := Color{R: 1, A: 1}
	n := NewMesh("mesh", g, red)
	assertNodeDefaults(t, n, "mesh", NodeTypeMesh)
	if n.Geometry != g {
		t.Error("Geometry not set")
	}
	if n.Color != red {
		t.Errorf("Color = %v, want %v", n.Color, red)
	}
	if !n.Interactable {
		t.Error("meshes should be interactable by default")
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.Scale != (Vec3{1, 1, 1}) {
		t.Errorf("Scale = %v, want (1, 1, 1)", n.Scale)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Renderable {
		t.Error("Renderable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("p")
	child := NewContainer("c")
	parent.AddChild(child)
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 || parent.ChildAt(0) != child {
		t.Error("child not in parent's children")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if c.Parent != b {
		t.Error("child.Parent should be the new parent")
	}
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewContainer("p").AddChild(nil)
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	b.AddChild(a)
}

func TestRemoveChild(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	p.AddChild(c)
	p.RemoveChild(c)
	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("child not removed")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	p.RemoveChild(c)
}

func TestRemoveFromParentNoParent(t *testing.T) {
	NewContainer("orphan").RemoveFromParent() // must not panic
}

func TestRemoveChildren(t *testing.T) {
	p := NewContainer("p")
	kids := []*Node{NewContainer("a"), NewContainer("b")}
	for _, k := range kids {
		p.AddChild(k)
	}
	p.RemoveChildren()
	if p.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", p.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s should be detached but not disposed", k.Name)
		}
	}
}

func TestFindChild(t *testing.T) {
	root := NewContainer("root")
	group := NewContainer("group")
	leaf := NewContainer("leaf")
	root.AddChild(group)
	group.AddChild(leaf)
	if got := root.FindChild("leaf"); got != leaf {
		t.Errorf("FindChild(leaf) = %v, want leaf", got)
	}
	if got := root.FindChild("missing"); got != nil {
		t.Errorf("FindChild(missing) = %v, want nil", got)
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	p := NewContainer("p")
	c := NewMesh("c", MustGeometry(NewBox(Vec3{1, 1, 1})), ColorWhite)
	c.OnClick = func(ClickContext) {}
	root.AddChild(p)
	p.AddChild(c)

	p.Dispose()

	if !p.IsDisposed() || !c.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	if c.OnClick != nil || c.Geometry != nil {
		t.Error("dispose should drop handlers and geometry")
	}
	p.Dispose() // idempotent
}

func TestDebugDisposedPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic on disposed node in debug mode")
		}
	}()
	s.Root().AddChild(n)
}
