package willow3d

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	sortTime      time.Duration
	submitTime    time.Duration
	triangleCount int
	drawCallCount int
}

// debugLogEvery limits frame stats to one log line per this many frames.
const debugLogEvery = 60

// debugLog logs timing and draw-call stats.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogEvery != 0 {
		return
	}
	logger.Debug("frame",
		"frame", s.frame,
		"traverse", stats.traverseTime,
		"sort", stats.sortTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.sortTime+stats.submitTime,
		"triangles", stats.triangleCount,
		"drawCalls", stats.drawCallCount,
	)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("willow3d debug: %s on disposed node %q", op, n.Name))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "node", n.Name, "depth", depth, "max", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}
