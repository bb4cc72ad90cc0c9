package gesture

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"
)

const testTarget Target = "canvas"

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(ms int) time.Time {
	return t0.Add(time.Duration(ms) * time.Millisecond)
}

// recorder captures both notification channels.
type recorder struct {
	inputs   []InputEvent
	gestures []GestureEvent
}

func (r *recorder) of(g Gesture) []GestureEvent {
	var out []GestureEvent
	for _, ev := range r.gestures {
		if ev.Gesture == g {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) has(g Gesture, s InputState) bool {
	for _, ev := range r.gestures {
		if ev.Gesture == g && ev.State == s {
			return true
		}
	}
	return false
}

// trace renders the gesture channel as "gesture/state" strings.
func (r *recorder) trace() []string {
	out := make([]string, 0, len(r.gestures))
	for _, ev := range r.gestures {
		out = append(out, ev.Gesture.String()+"/"+ev.State.String())
	}
	return out
}

func (r *recorder) reset() {
	r.inputs = nil
	r.gestures = nil
}

func newTestEngine(t *testing.T) (*Engine, *recorder) {
	t.Helper()
	e := NewEngine()
	e.SetNowFunc(func() time.Time { return t0 })
	e.SetTarget(testTarget)
	rec := &recorder{}
	e.OnInput(func(ev InputEvent) { rec.inputs = append(rec.inputs, ev) })
	e.OnGesture(func(ev GestureEvent) { rec.gestures = append(rec.gestures, ev) })
	return e, rec
}

func touch(phase Phase, id int, ms int, x, y, pressure float64) PointerEvent {
	return PointerEvent{
		Target:      testTarget,
		Time:        at(ms),
		Phase:       phase,
		PointerType: PointerTouch,
		ID:          id,
		Position:    Vec2{X: x, Y: y},
		Pressure:    pressure,
	}
}

func mouse(phase Phase, b MouseButton, ms int, x, y float64) PointerEvent {
	return PointerEvent{
		Target:      testTarget,
		Time:        at(ms),
		Phase:       phase,
		PointerType: PointerMouse,
		Position:    Vec2{X: x, Y: y},
		Button:      b,
	}
}

func key(phase Phase, ms int, code string) KeyEvent {
	return KeyEvent{Target: testTarget, Time: at(ms), Phase: phase, Code: code}
}

func feed(e *Engine, evs ...RawEvent) {
	for _, ev := range evs {
		e.Handle(ev)
	}
}

func equalTrace(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fakeListener records attach/detach calls.
type fakeListener struct {
	attached []Target
	detached int
	sink     Sink
}

func (l *fakeListener) Attach(t Target, s Sink) {
	l.attached = append(l.attached, t)
	l.sink = s
}

func (l *fakeListener) Detach() {
	l.detached++
	l.sink = nil
}

func TestHandle_IgnoresOtherTarget(t *testing.T) {
	e, rec := newTestEngine(t)
	ev := touch(PhaseDown, 0, 0, 10, 10, 0.5)
	ev.Target = "elsewhere"
	e.Handle(ev)
	if len(rec.inputs) != 0 || e.Tracked() != 0 {
		t.Errorf("foreign target admitted: inputs=%d tracked=%d", len(rec.inputs), e.Tracked())
	}
}

func TestHandle_IgnoresWithoutTarget(t *testing.T) {
	e := NewEngine()
	var n int
	e.OnInput(func(InputEvent) { n++ })
	ev := touch(PhaseDown, 0, 0, 10, 10, 0.5)
	ev.Target = NoTarget
	e.Handle(ev)
	if n != 0 {
		t.Errorf("unbound engine admitted %d events", n)
	}
}

func TestHandle_IgnoresUnknownPointerType(t *testing.T) {
	e, rec := newTestEngine(t)
	ev := touch(PhaseDown, 0, 0, 10, 10, 0.5)
	ev.PointerType = "stylus-ring"
	e.Handle(ev)
	if len(rec.inputs) != 0 || e.Device() != DeviceUnknown {
		t.Errorf("unknown pointer admitted: inputs=%d device=%s", len(rec.inputs), e.Device())
	}
}

func TestHandle_ZeroTimeUsesClock(t *testing.T) {
	e, rec := newTestEngine(t)
	now := t0
	e.SetNowFunc(func() time.Time { return now })

	down := touch(PhaseDown, 0, 0, 10, 10, 0.5)
	down.Time = time.Time{}
	e.Handle(down)
	now = now.Add(100 * time.Millisecond)
	up := touch(PhaseUp, 0, 0, 10, 10, 0)
	up.Time = time.Time{}
	e.Handle(up)

	if !rec.has(GestureTap, StateCompleted) {
		t.Errorf("gestures = %v, want a tap", rec.trace())
	}
}

func TestSetTarget_SameTargetNoop(t *testing.T) {
	e, rec := newTestEngine(t)
	e.Handle(mouse(PhaseDown, MouseButtonLeft, 0, 10, 10))
	rec.reset()

	r := e.SetTarget(testTarget)
	if !r.Empty() || len(rec.inputs) != 0 {
		t.Errorf("same target cancelled: report=%+v inputs=%d", r, len(rec.inputs))
	}
	if !e.Actions().Contains(ActionMouseLeft) {
		t.Error("left button should still be held")
	}
}

func TestSetTarget_CancelsBeforeReturning(t *testing.T) {
	e, rec := newTestEngine(t)
	feed(e,
		mouse(PhaseDown, MouseButtonLeft, 0, 10, 10),
		mouse(PhaseMove, MouseButtonNone, 16, 30, 10),
	)
	rec.reset()

	r := e.SetTarget("other")
	if e.Target() != "other" {
		t.Fatalf("Target = %q, want other", e.Target())
	}
	if len(r.Gestures) != 1 || r.Gestures[0] != GestureLeftDrag {
		t.Errorf("report gestures = %v, want [left-drag]", r.Gestures)
	}
	if len(r.Actions) != 1 || r.Actions[0] != ActionMouseLeft {
		t.Errorf("report actions = %v, want [mouse-left]", r.Actions)
	}
	if !rec.has(GestureLeftDrag, StateCancelled) {
		t.Errorf("gestures = %v, want left-drag/cancelled", rec.trace())
	}
	if !e.Actions().Empty() || !e.Gestures().Empty() || e.Tracked() != 0 {
		t.Errorf("state left over: actions=%s gestures=%s tracked=%d", e.Actions(), e.Gestures(), e.Tracked())
	}

	// old-target events are now ignored
	rec.reset()
	e.Handle(mouse(PhaseUp, MouseButtonLeft, 32, 30, 10))
	if len(rec.inputs) != 0 {
		t.Errorf("old target admitted after rebind: %d inputs", len(rec.inputs))
	}
}

func TestSetTarget_ClearingCancels(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Handle(key(PhaseDown, 0, "KeyA"))
	r := e.SetTarget(NoTarget)
	if len(r.Keys) != 1 || r.Keys[0] != "KeyA" {
		t.Errorf("report keys = %v, want [KeyA]", r.Keys)
	}
	if e.HeldKeys() != 0 {
		t.Errorf("HeldKeys = %d, want 0", e.HeldKeys())
	}
}

func TestSetEnabled_DetachesAndReattaches(t *testing.T) {
	e, rec := newTestEngine(t)
	l := &fakeListener{}
	e.SetListener(l)
	if len(l.attached) != 1 || l.attached[0] != testTarget {
		t.Fatalf("attached = %v, want [canvas]", l.attached)
	}
	if l.sink != e {
		t.Error("listener should receive the engine as sink")
	}

	e.Handle(touch(PhaseDown, 0, 0, 10, 10, 0.5))
	r := e.SetEnabled(false)
	if e.Enabled() {
		t.Error("Enabled() = true after disable")
	}
	if l.detached != 1 {
		t.Errorf("detached = %d, want 1", l.detached)
	}
	if len(r.Actions) != 1 || r.Actions[0] != ActionTouchHold {
		t.Errorf("report actions = %v, want [touch-hold]", r.Actions)
	}
	if _, ok := e.TouchState(); ok {
		t.Error("touch sequence survived disable")
	}

	rec.reset()
	e.Handle(touch(PhaseDown, 0, 100, 10, 10, 0.5))
	if len(rec.inputs) != 0 {
		t.Errorf("disabled engine admitted %d inputs", len(rec.inputs))
	}

	if r := e.SetEnabled(false); !r.Empty() || l.detached != 1 {
		t.Error("second disable should be a no-op")
	}

	e.SetEnabled(true)
	if len(l.attached) != 2 {
		t.Errorf("attached = %v, want re-attach", l.attached)
	}
}

func TestSetListener_NoTargetStaysDetached(t *testing.T) {
	e := NewEngine()
	l := &fakeListener{}
	e.SetListener(l)
	if len(l.attached) != 0 {
		t.Fatalf("attached without target: %v", l.attached)
	}
	e.SetTarget("a")
	e.SetTarget("b")
	if len(l.attached) != 2 || l.attached[1] != "b" || l.detached != 1 {
		t.Errorf("attached = %v detached = %d", l.attached, l.detached)
	}
	e.SetListener(nil)
	if l.detached != 2 {
		t.Errorf("replacing listener should detach, detached = %d", l.detached)
	}
}

func TestBlur_CancelsAndStaysBound(t *testing.T) {
	e, rec := newTestEngine(t)
	feed(e,
		touch(PhaseDown, 0, 0, 10, 10, 0.5),
		touch(PhaseMove, 0, 16, 40, 10, 0.5),
	)
	rec.reset()

	r := e.Blur()
	if len(r.Gestures) != 1 || r.Gestures[0] != GestureDrag {
		t.Errorf("report gestures = %v, want [drag]", r.Gestures)
	}
	if !rec.has(GestureDrag, StateCancelled) {
		t.Errorf("gestures = %v, want drag/cancelled", rec.trace())
	}
	if e.Target() != testTarget || !e.Enabled() {
		t.Error("blur should not unbind or disable")
	}
	if r := e.Blur(); !r.Empty() {
		t.Errorf("second blur report = %+v, want empty", r)
	}
}

func TestReentrantDisableDeliversQueuedFirst(t *testing.T) {
	e := NewEngine()
	e.SetTarget(testTarget)

	var trace []string
	e.OnInput(func(ev InputEvent) {
		if ev.Action == ActionTouchMove && ev.State == StateMoved {
			e.SetEnabled(false)
		}
	})
	e.OnGesture(func(ev GestureEvent) {
		trace = append(trace, ev.Gesture.String()+"/"+ev.State.String())
	})

	feed(e,
		touch(PhaseDown, 0, 0, 10, 10, 0.5),
		touch(PhaseMove, 0, 16, 40, 10, 0.5),
	)

	// the began recognized before the disable still arrives, ahead of its cancellation
	want := []string{"drag/began", "drag/cancelled"}
	if !equalTrace(trace, want) {
		t.Errorf("gestures = %v, want %v", trace, want)
	}
	if !e.Gestures().Empty() || !e.Actions().Empty() || e.Tracked() != 0 {
		t.Error("engine should be idle after reentrant disable")
	}
}

func TestReentrantIdleBlurKeepsRecognizedGestures(t *testing.T) {
	e, rec := newTestEngine(t)
	var report CancellationReport
	e.OnInput(func(ev InputEvent) {
		if ev.Action == ActionMouseLeft && ev.State == StateEnded {
			report = e.Blur()
		}
	})
	feed(e,
		mouse(PhaseDown, MouseButtonLeft, 0, 10, 10),
		mouse(PhaseUp, MouseButtonLeft, 50, 10, 10),
	)

	if !report.Empty() {
		t.Errorf("blur report = %+v, want empty", report)
	}
	want := []string{"left-click/completed", "left-drag/ended"}
	if got := rec.trace(); !equalTrace(got, want) {
		t.Errorf("gestures = %v, want %v", got, want)
	}
}

func TestReentrantBlurCancelsAfterPending(t *testing.T) {
	e, rec := newTestEngine(t)
	var report CancellationReport
	e.OnInput(func(ev InputEvent) {
		if ev.Action == ActionMouseLeft && ev.State == StateEnded {
			report = e.Blur()
		}
	})
	feed(e,
		mouse(PhaseDown, MouseButtonLeft, 0, 0, 0),
		mouse(PhaseDown, MouseButtonRight, 10, 0, 0),
		mouse(PhaseMove, MouseButtonNone, 20, 5, 0),
	)
	rec.reset()
	e.Handle(mouse(PhaseUp, MouseButtonLeft, 30, 5, 0))

	want := []string{"left-click/completed", "left-drag/ended", "right-drag/cancelled"}
	if got := rec.trace(); !equalTrace(got, want) {
		t.Errorf("gestures = %v, want %v", got, want)
	}
	if len(report.Gestures) != 1 || report.Gestures[0] != GestureRightDrag {
		t.Errorf("report gestures = %v, want [right-drag]", report.Gestures)
	}
	if len(report.Actions) != 1 || report.Actions[0] != ActionMouseRight {
		t.Errorf("report actions = %v, want [mouse-right]", report.Actions)
	}
}

func TestSetThresholds(t *testing.T) {
	e := NewEngine()
	th := DefaultThresholds()
	th.TapMaxDistance = 25
	if err := e.SetThresholds(th); err != nil {
		t.Fatalf("SetThresholds(valid) = %v", err)
	}
	if e.Thresholds().TapMaxDistance != 25 {
		t.Errorf("TapMaxDistance = %v, want 25", e.Thresholds().TapMaxDistance)
	}

	bad := th
	bad.PressMaxDuration = bad.PressMinDuration - time.Millisecond
	if err := e.SetThresholds(bad); err == nil {
		t.Error("SetThresholds accepted press max < press min")
	}
	if e.Thresholds() != th {
		t.Error("rejected table replaced the active one")
	}
}

func TestReentrantHandleFromGestureHandler(t *testing.T) {
	e, rec := newTestEngine(t)
	fired := false
	e.OnGesture(func(ev GestureEvent) {
		if ev.Gesture == GestureKeyPress && !fired {
			fired = true
			e.Handle(key(PhaseDown, 20, "KeyB"))
			e.Handle(key(PhaseUp, 30, "KeyB"))
		}
	})
	feed(e, key(PhaseDown, 0, "KeyA"), key(PhaseUp, 10, "KeyA"))

	presses := rec.of(GestureKeyPress)
	if len(presses) != 2 || presses[0].Key != "KeyA" || presses[1].Key != "KeyB" {
		t.Errorf("key presses = %+v, want KeyA then KeyB", presses)
	}
	if e.HeldKeys() != 0 {
		t.Errorf("HeldKeys = %d, want 0", e.HeldKeys())
	}
}

func TestNotificationPayloadIsSnapshot(t *testing.T) {
	e, rec := newTestEngine(t)
	feed(e,
		touch(PhaseDown, 0, 0, 10, 10, 0.5),
		touch(PhaseMove, 0, 16, 40, 10, 0.5),
		touch(PhaseMove, 0, 32, 80, 10, 0.5),
	)
	drags := rec.of(GestureDrag)
	if len(drags) != 2 {
		t.Fatalf("drag notifications = %d, want 2", len(drags))
	}
	if drags[0].Input.Position.X != 40 || drags[1].Input.Position.X != 80 {
		t.Errorf("payload positions = %v, %v; want 40, 80", drags[0].Input.Position, drags[1].Input.Position)
	}
}

func TestDebugOutput(t *testing.T) {
	e, _ := newTestEngine(t)
	var buf bytes.Buffer
	e.SetDebugOutput(&buf)
	e.SetDebugMode(true)

	feed(e, key(PhaseDown, 0, "KeyA"), key(PhaseUp, 10, "KeyA"))
	out := buf.String()
	if !strings.Contains(out, "[gesture] device unknown -> mouse-keyboard") {
		t.Errorf("missing device line in %q", out)
	}
	if !strings.Contains(out, "[gesture] gesture key-press completed") {
		t.Errorf("missing gesture line in %q", out)
	}

	buf.Reset()
	e.SetDebugMode(false)
	feed(e, key(PhaseDown, 20, "KeyA"), key(PhaseUp, 30, "KeyA"))
	if buf.Len() != 0 {
		t.Errorf("release mode wrote %q", buf.String())
	}
}

func TestNewEngineFromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Target = "pad"
	cfg.Thresholds.TapMaxDistance = 20
	e, err := NewEngineFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if e.Target() != "pad" || e.Thresholds().TapMaxDistance != 20 {
		t.Errorf("engine = target %q tap distance %v", e.Target(), e.Thresholds().TapMaxDistance)
	}

	cfg.Thresholds.TapMaxDuration = 0
	if _, err := NewEngineFromConfig(cfg); err == nil {
		t.Error("expected error for invalid thresholds")
	}
}
