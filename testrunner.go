package gesture

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	From     float64 `json:"from,omitempty"`
	To       float64 `json:"to,omitempty"`
	Frames   int     `json:"frames,omitempty"`
	Ms       int     `json:"ms,omitempty"`
	Button   string  `json:"button,omitempty"`
	Key      string  `json:"key,omitempty"`
	Gesture  string  `json:"gesture,omitempty"`
	DX       float64 `json:"dx,omitempty"`
	DY       float64 `json:"dy,omitempty"`
}

// script is the top-level JSON structure of a gesture script.
type script struct {
	Target string       `json:"target,omitempty"`
	Steps  []scriptStep `json:"steps"`
}

// TestRunner replays a scripted input sequence into an Engine and checks
// the gestures it produces. Scripts are JSON:
//
//	{"steps": [
//		{"action": "tap", "x": 10, "y": 10},
//		{"action": "wait", "ms": 100},
//		{"action": "tap", "x": 12, "y": 10},
//		{"action": "expect", "gesture": "double-tap"}
//	]}
//
// An expect step passes when the named gesture was recognized since the
// previous expect step.
type TestRunner struct {
	target Target
	steps  []scriptStep
	cursor int
	seen   []GestureEvent
	done   bool
}

// LoadTestScript parses a JSON gesture script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var s script
	if err := json.Unmarshal(jsonData, &s); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{target: Target(s.Target), steps: s.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "tap", "press", "drag", "pinch", "wheel", "blur", "wait":
	case "click", "mousedrag":
		if _, ok := parseButton(st.Button); !ok {
			return fmt.Errorf("unknown button %q", st.Button)
		}
	case "key":
		if st.Key == "" {
			return fmt.Errorf("key step without key")
		}
	case "expect":
		if _, ok := ParseGesture(st.Gesture); !ok {
			return fmt.Errorf("unknown gesture %q", st.Gesture)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

func parseButton(name string) (MouseButton, bool) {
	switch name {
	case "", "left":
		return MouseButtonLeft, true
	case "middle":
		return MouseButtonMiddle, true
	case "right":
		return MouseButtonRight, true
	}
	return MouseButtonNone, false
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Run executes every remaining step against e on a virtual clock starting
// at start. If the script names a target, e is bound to it first. Run stops
// at the first failed expectation.
func (r *TestRunner) Run(e *Engine, start time.Time) error {
	if r.target != NoTarget {
		e.SetTarget(r.target)
	}
	h := e.OnGesture(func(ev GestureEvent) {
		r.seen = append(r.seen, ev)
	})
	defer h.Remove()

	in := NewInjector(e, start)
	for !r.done {
		if err := r.step(e, in); err != nil {
			return err
		}
	}
	return nil
}

// step executes the step under the cursor.
func (r *TestRunner) step(e *Engine, in *Injector) error {
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}
	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		in.Tap(st.X, st.Y)
	case "press":
		in.Press(st.X, st.Y, time.Duration(st.Ms)*time.Millisecond)
	case "drag":
		in.Drag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "pinch":
		in.Pinch(st.X, st.Y, st.From, st.To, st.Frames)
	case "click":
		b, _ := parseButton(st.Button)
		in.Click(b, st.X, st.Y)
	case "mousedrag":
		b, _ := parseButton(st.Button)
		in.MouseDrag(b, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		in.Wheel(st.DX, st.DY)
	case "key":
		in.Key(st.Key)
	case "blur":
		e.Blur()
	case "wait":
		in.Wait(time.Duration(st.Ms) * time.Millisecond)
	case "expect":
		g, _ := ParseGesture(st.Gesture)
		seen := r.seen
		r.seen = nil
		if !containsGesture(seen, g) {
			return fmt.Errorf("step %d: expected %s, saw %v", r.cursor-1, g, describeGestures(seen))
		}
	}

	if r.cursor >= len(r.steps) {
		r.done = true
	}
	return nil
}

func containsGesture(evs []GestureEvent, g Gesture) bool {
	for _, ev := range evs {
		if ev.Gesture == g {
			return true
		}
	}
	return false
}

func describeGestures(evs []GestureEvent) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev.Gesture.String()+"/"+ev.State.String())
	}
	return out
}
