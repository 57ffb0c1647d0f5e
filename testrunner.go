package willow3d

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `yaml:"action" json:"action"`
	Label  string  `yaml:"label,omitempty" json:"label,omitempty"`
	X      float64 `yaml:"x,omitempty" json:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty" json:"y,omitempty"`
	Frames int     `yaml:"frames,omitempty" json:"frames,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps" json:"steps"`
}

var errNoSteps = errors.New("no steps")

var knownActions = map[string]bool{
	"move": true, "press": true, "release": true,
	"click": true, "wait": true, "screenshot": true,
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual testing. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached to a Scene via SetTestRunner. Scripts are YAML; JSON scripts
// parse as well since JSON is valid YAML.
//
//	{"steps": [
//	  {"action": "move", "x": 400, "y": 300},
//	  {"action": "wait", "frames": 30},
//	  {"action": "click", "x": 400, "y": 300},
//	  {"action": "screenshot", "label": "clicked"}
//	]}
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step method
// is called from Scene.Advance before processInput each frame.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Advance.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "press":
		s.InjectPress(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
