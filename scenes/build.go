package scenes

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/phanxgames/willow3d"
	"github.com/phanxgames/willow3d/spinner"
	"github.com/phanxgames/willow3d/tunables"
)

// ErrPanelMismatch is returned by Build when the panel lacks a parameter the
// assembly binds, or has it with the wrong kind.
var ErrPanelMismatch = errors.New("scenes: panel does not match binding")

// Object is a built object: its spinner and the mesh node drawing it.
type Object struct {
	Name    string
	Node    *willow3d.Node
	Spinner *spinner.Object
	shape   Shape
}

// Built is an assembly placed on a scene.
type Built struct {
	Name string
	// Root holds every object node. It is the scene root unless the
	// assembly asked for a group.
	Root    *willow3d.Node
	Objects []*Object
	Lights  []*willow3d.Light
	Tunable []*willow3d.Light
	Helpers []*willow3d.Node

	scene   *willow3d.Scene
	group   *willow3d.Node
	panel   *tunables.Panel
	binding PanelBinding
	radius  float64

	groupEnters int
	groupLeaves int
}

// Build creates one mesh node per object and the assembly's lights on s.
// Node callbacks drive the spinners: enter (which stops propagation), leave,
// click and the per-frame update. When the assembly has a panel binding and
// panel is not nil, bound values are read from panel every frame.
func Build(a Assembly, s *willow3d.Scene, panel *tunables.Panel) (*Built, error) {
	b := &Built{Name: a.Name, scene: s, Root: s.Root(), radius: -1}
	if a.Panel != nil && panel != nil {
		if err := checkBinding(*a.Panel, panel); err != nil {
			return nil, err
		}
		b.panel, b.binding = panel, *a.Panel
	}

	objects := make([]*Object, 0, len(a.Objects))
	for _, spec := range a.Objects {
		obj, err := newObject(spec)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", a.Name, err)
		}
		objects = append(objects, obj)
	}

	if a.Eye != (willow3d.Vec3{}) {
		s.Camera().LookAt(a.Eye, willow3d.Vec3{})
	}

	if a.Group || b.panel != nil {
		b.group = willow3d.NewContainer(a.Name)
		if a.Group {
			b.group.OnPointerEnter = func(willow3d.PointerContext) { b.groupEnters++ }
			b.group.OnPointerLeave = func(willow3d.PointerContext) { b.groupLeaves++ }
		}
		if b.panel != nil {
			b.group.OnUpdate = func(willow3d.FrameContext) { b.readPanel() }
		}
		s.Root().AddChild(b.group)
		b.Root = b.group
	}
	for _, obj := range objects {
		b.Root.AddChild(obj.Node)
	}
	b.Objects = objects

	for _, ls := range a.Lights {
		l := newLight(ls)
		s.AddLight(l)
		b.Lights = append(b.Lights, l)
		if ls.Tunable {
			b.Tunable = append(b.Tunable, l)
		}
		if ls.Helper && l.Kind == willow3d.LightDirectional {
			h := willow3d.NewLightHelper(l)
			s.Root().AddChild(h)
			b.Helpers = append(b.Helpers, h)
		}
	}
	if b.panel != nil {
		b.readPanel()
	}

	slog.Debug("Built assembly", "name", a.Name, "objects", len(b.Objects), "lights", len(b.Lights))
	return b, nil
}

func checkBinding(bind PanelBinding, panel *tunables.Panel) error {
	kinds := make(map[string]tunables.Kind)
	for _, prm := range panel.Params() {
		kinds[prm.Name] = prm.Kind
	}
	for _, want := range []struct {
		name string
		kind tunables.Kind
	}{
		{bind.Color, tunables.KindColor},
		{bind.Intensity, tunables.KindFloat},
		{bind.Radius, tunables.KindFloat},
	} {
		if want.name == "" {
			continue
		}
		k, ok := kinds[want.name]
		if !ok {
			return fmt.Errorf("%w: no parameter %q", ErrPanelMismatch, want.name)
		}
		if k != want.kind {
			return fmt.Errorf("%w: parameter %q has the wrong kind", ErrPanelMismatch, want.name)
		}
	}
	return nil
}

func newObject(spec ObjectSpec) (*Object, error) {
	sp, err := spinner.New(spec.Spinner)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", spec.Name, err)
	}
	geom, err := spec.Shape.Geometry()
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", spec.Name, err)
	}
	obj := &Object{Name: spec.Name, Spinner: sp, shape: spec.Shape}
	n := willow3d.NewMesh(spec.Name, geom, sp.Color())
	tr := sp.Transform()
	n.SetTransform(tr.Position, tr.Rotation, tr.Scale)

	n.OnPointerEnter = func(ctx willow3d.PointerContext) {
		ctx.StopPropagation()
		sp.Enter()
		n.Color = sp.Color()
	}
	n.OnPointerLeave = func(willow3d.PointerContext) {
		sp.Leave()
		n.Color = sp.Color()
	}
	n.OnClick = func(willow3d.ClickContext) {
		sp.Click()
		n.SetScale(sp.Transform().Scale)
	}
	n.OnUpdate = func(ctx willow3d.FrameContext) {
		tr := sp.Update(ctx.Elapsed, ctx.Delta)
		n.SetTransform(tr.Position, tr.Rotation, tr.Scale)
		n.Color = sp.Color()
	}
	obj.Node = n
	return obj, nil
}

func newLight(ls LightSpec) *willow3d.Light {
	var l *willow3d.Light
	if ls.Kind == willow3d.LightAmbient {
		l = willow3d.NewAmbientLight(ls.Intensity)
	} else {
		l = willow3d.NewDirectionalLight(ls.Position, ls.Intensity)
	}
	if ls.Name != "" {
		l.Name = ls.Name
	}
	if ls.Color != (willow3d.Color{}) {
		l.Color = ls.Color
	}
	return l
}

// readPanel copies the bound panel values into the tunable lights and,
// when the radius changed, retessellates every sphere. All values come from
// one snapshot so a preset reload never lands halfway through a frame.
func (b *Built) readPanel() {
	snap := b.panel.Snapshot()
	for _, l := range b.Tunable {
		if b.binding.Color != "" {
			l.Color = snap.Color(b.binding.Color)
		}
		if b.binding.Intensity != "" {
			l.Intensity = snap.Float(b.binding.Intensity)
		}
	}
	if b.binding.Radius == "" {
		return
	}
	r := snap.Float(b.binding.Radius)
	if r == b.radius {
		return
	}
	for _, obj := range b.Objects {
		if obj.shape.Kind != willow3d.GeometrySphere {
			continue
		}
		shape := obj.shape
		shape.Radius = r
		geom, err := shape.Geometry()
		if err != nil {
			slog.Warn("Retessellating sphere failed", "object", obj.Name, "radius", r, "error", err)
			continue
		}
		obj.shape = shape
		obj.Node.SetGeometry(geom)
	}
	b.radius = r
}

// Object returns the built object with the given name, or nil.
func (b *Built) Object(name string) *Object {
	for _, obj := range b.Objects {
		if obj.Name == name {
			return obj
		}
	}
	return nil
}

// GroupHovers reports how often the group container's own enter and leave
// handlers ran. Both stay zero for assemblies without a group.
func (b *Built) GroupHovers() (enters, leaves int) {
	return b.groupEnters, b.groupLeaves
}

// Dispose removes the assembly's nodes, helpers and lights from the scene.
func (b *Built) Dispose() {
	if b.group != nil {
		b.group.Dispose()
	} else {
		for _, obj := range b.Objects {
			obj.Node.Dispose()
		}
	}
	for _, h := range b.Helpers {
		h.Dispose()
	}
	for _, l := range b.Lights {
		b.scene.RemoveLight(l)
	}
}
