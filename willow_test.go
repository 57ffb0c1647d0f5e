package willow3d

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec3, eps float64) bool {
	return approxEqual(a[0], b[0], eps) && approxEqual(a[1], b[1], eps) && approxEqual(a[2], b[2], eps)
}

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestRectEmpty(t *testing.T) {
	if !(Rect{Width: 0, Height: 10}).Empty() {
		t.Error("zero width should be empty")
	}
	if (Rect{Width: 1, Height: 1}).Empty() {
		t.Error("1x1 should not be empty")
	}
}

func TestEventTypeString(t *testing.T) {
	tests := []struct {
		e    EventType
		want string
	}{
		{EventPointerDown, "pointerdown"},
		{EventPointerUp, "pointerup"},
		{EventPointerMove, "pointermove"},
		{EventClick, "click"},
		{EventPointerEnter, "pointerenter"},
		{EventPointerLeave, "pointerleave"},
		{EventType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("EventType(%d).String() = %q, want %q", tt.e, got, tt.want)
		}
	}
}
