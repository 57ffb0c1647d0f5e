package willow3d

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/willow3d/linear"
)

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	moved     bool
	hitNode   *Node       // node under the pointer at press time
	hoverNode *Node       // last node the pointer was hovering over (for enter/leave)
	button    MouseButton // button captured at press time
}

// hitResult describes the nearest ray hit found by hitTest.
type hitResult struct {
	node  *Node
	point Vec3
	dist  float64
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

const numEventTypes = int(EventPointerLeave) + 1

type handlerRegistry struct {
	byType [numEventTypes][]pointerHandler
	nextID uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

func (s *Scene) register(evt EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byType[evt] = append(s.handlers.byType[evt], pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: evt}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.register(EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.register(EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.register(EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.register(EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.register(EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return s.register(EventClick, fn)
}

// --- Hit testing ---

// collectInteractable appends every visible, interactable mesh in the
// subtree to buf. Invisible nodes hide their subtree; Interactable only
// applies to the node itself.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && n.Type == NodeTypeMesh && n.Geometry != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// intersectNode returns the nearest triangle hit of ray on n.
func intersectNode(n *Node, ray linear.Ray) (float64, bool) {
	verts := n.refreshWorldVerts()
	if !ray.IntersectSphere(n.worldCenter, n.worldRadius) {
		return 0, false
	}
	inds := n.Geometry.Indices
	best := math.Inf(1)
	hit := false
	for i := 0; i+2 < len(inds); i += 3 {
		t, ok := ray.IntersectTriangle(verts[inds[i]], verts[inds[i+1]], verts[inds[i+2]])
		if ok && t < best {
			best = t
			hit = true
		}
	}
	return best, hit
}

// hitTest finds the nearest interactable mesh under the screen point.
// Ties go to the node visited first in tree order. Points outside the
// camera viewport never hit.
func (s *Scene) hitTest(sx, sy float64) hitResult {
	vp := s.camera.Viewport
	if vp.Empty() || !vp.Contains(sx, sy) {
		return hitResult{dist: math.Inf(1)}
	}
	ray := s.camera.ScreenRay(sx, sy)
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	res := hitResult{dist: math.Inf(1)}
	for _, n := range s.hitBuf {
		if t, ok := intersectNode(n, ray); ok && t < res.dist {
			res = hitResult{node: n, point: ray.At(t), dist: t}
		}
	}
	return res
}

// PickAt returns the nearest interactable mesh at the given screen
// coordinates, or nil.
func (s *Scene) PickAt(sx, sy float64) *Node {
	updateWorldTransform(s.root, linear.Identity(), false)
	return s.hitTest(sx, sy).node
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Scene.Advance after world transforms are
// refreshed. A queued synthetic event takes the place of real mouse input
// for that frame. Real input is only polled while the game loop is running.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.running {
		return
	}
	mods := readModifiers()
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		pressed, button = true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		pressed, button = true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		pressed, button = true, MouseButtonMiddle
	}
	s.processPointer(float64(mx), float64(my), pressed, button, mods)
}

// processPointer runs the pointer state machine for the mouse pointer.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	hit := s.hitTest(sx, sy)
	target := hit.node

	// Fire hover enter/leave when the hovered node changes.
	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.IsDisposed() {
			s.dispatch(EventPointerLeave, ps.hoverNode, hitResult{node: ps.hoverNode}, sx, sy, button, mods)
		}
		if target != nil {
			s.dispatch(EventPointerEnter, target, hit, sx, sy, button, mods)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.dispatch(EventPointerDown, target, hit, sx, sy, button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.dispatch(EventClick, target, hit, sx, sy, ps.button, mods)
		}
		s.dispatch(EventPointerUp, target, hit, sx, sy, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
	case !ps.moved || sx != ps.lastX || sy != ps.lastY:
		s.dispatch(EventPointerMove, target, hit, sx, sy, ps.button, mods)
	}
	ps.lastX, ps.lastY, ps.moved = sx, sy, true
}

// --- Event dispatch ---

// nodeHandler returns the per-node callback for evt, or nil.
func nodeHandler(n *Node, evt EventType) func(PointerContext) {
	switch evt {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// dispatch fires scene-level handlers, then the target's handler, then each
// ancestor's handler until one calls StopPropagation.
func (s *Scene) dispatch(evt EventType, node *Node, hit hitResult, sx, sy float64, button MouseButton, mods KeyModifiers) {
	var prop propagation
	ctx := PointerContext{
		Node: node, ScreenX: sx, ScreenY: sy,
		Point: hit.point, Distance: hit.dist,
		Button: button, Modifiers: mods,
		prop: &prop,
	}
	if node != nil {
		ctx.EntityID = node.EntityID
		ctx.UserData = node.UserData
	} else {
		ctx.Distance = 0
	}

	for _, h := range s.handlers.byType[evt] {
		h.fn(ctx)
	}

	for cur := node; cur != nil && !prop.stopped; cur = cur.Parent {
		fn := nodeHandler(cur, evt)
		if fn == nil {
			continue
		}
		ctx.Current = cur
		fn(ctx)
	}

	s.emitInteractionEvent(evt, node, ctx)
}

// --- ECS bridge ---

func (s *Scene) emitInteractionEvent(evt EventType, node *Node, ctx PointerContext) {
	if s.store == nil || node == nil || node.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:      evt,
		EntityID:  node.EntityID,
		ScreenX:   ctx.ScreenX,
		ScreenY:   ctx.ScreenY,
		Point:     ctx.Point,
		Button:    ctx.Button,
		Modifiers: ctx.Modifiers,
	})
}
