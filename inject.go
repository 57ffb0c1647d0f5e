package willow3d

// syntheticPointerEvent represents a single injected pointer event in
// screen coordinates. It runs through the same picking path as real mouse
// input.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

func (s *Scene) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
	s.injectDown = pressed
}

// InjectMove queues a pointer move to the given screen coordinates. The
// button state is whatever the previously queued event left it in, so a
// move between InjectPress and InjectRelease is a held move and any other
// move is a hover. The event is consumed on the next Advance.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(x, y, s.injectDown)
}

// InjectPress queues a left-button press at the given screen coordinates.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(x, y, true)
}

// InjectRelease queues a left-button release at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(x, y, false)
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// PendingInput returns the number of queued synthetic events.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button, 0)
	return true
}
