package gesture

import (
	"io"
	"os"
	"time"
)

// Sink receives raw input from a host.
type Sink interface {
	Handle(ev RawEvent)
	Blur() CancellationReport
}

// Listener is a host-side event source (window, canvas, socket) that can be
// bound to a target. The Engine attaches it while enabled and bound to a
// target, and detaches it otherwise.
type Listener interface {
	Attach(target Target, sink Sink)
	Detach()
}

// tapRecord remembers the last completed tap or click for double detection.
type tapRecord struct {
	at  time.Time
	pos Vec2
}

// notice is a pending notification.
type notice struct {
	input   *InputEvent
	gesture *GestureEvent
}

// Engine turns raw input events into gestures. It is single-threaded: all
// methods must be called from the same goroutine (usually the host's event
// loop). Handlers registered with OnInput and OnGesture run synchronously
// and may call back into the Engine.
type Engine struct {
	bus        bus
	thresholds Thresholds

	target   Target
	enabled  bool
	listener Listener
	attached bool

	device   DeviceFamily
	actions  ActionSet
	gestures GestureSet // mouse gestures; touch gestures live on the TouchState
	pointers pointerTracker
	touch    *TouchState
	keys     map[string]bool

	lastTap   *tapRecord
	lastClick *tapRecord

	// buttonDown is where each held mouse button went down.
	buttonDown [buttonCount]Vec2

	out []notice

	now      func() time.Time
	debug    bool
	debugOut io.Writer
}

// NewEngine creates an enabled engine with the default thresholds and no
// target. Call SetTarget before feeding events.
func NewEngine() *Engine {
	return &Engine{
		thresholds: DefaultThresholds(),
		enabled:    true,
		pointers:   newPointerTracker(),
		keys:       make(map[string]bool),
		now:        time.Now,
		debugOut:   os.Stderr,
	}
}

// NewEngineFromConfig creates an engine from a loaded configuration.
func NewEngineFromConfig(cfg Config) (*Engine, error) {
	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	e := NewEngine()
	e.thresholds = cfg.Thresholds
	e.SetDebugMode(cfg.Debug)
	if cfg.Target != "" {
		e.SetTarget(Target(cfg.Target))
	}
	return e, nil
}

// OnInput registers a handler for the input channel.
func (e *Engine) OnInput(fn func(InputEvent)) Handle {
	return e.bus.onInput(fn)
}

// OnGesture registers a handler for the gesture channel.
func (e *Engine) OnGesture(fn func(GestureEvent)) Handle {
	return e.bus.onGesture(fn)
}

// SetNowFunc overrides the clock used for events without a timestamp.
func (e *Engine) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		e.now = fn
	}
}

// SetThresholds replaces the threshold table. An invalid table is rejected
// and the active one kept.
func (e *Engine) SetThresholds(t Thresholds) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.thresholds = t
	return nil
}

// Thresholds returns the active threshold table.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Target returns the bound target.
func (e *Engine) Target() Target {
	return e.target
}

// SetTarget rebinds the engine. Any change, including clearing the target,
// first cancels every in-flight gesture and action; the report lists what
// was cancelled. Assigning the current target is a no-op.
func (e *Engine) SetTarget(t Target) CancellationReport {
	if t == e.target {
		return CancellationReport{}
	}
	report := e.cancelAll()
	e.detach()
	e.target = t
	e.attach()
	e.flush()
	return report
}

// Enabled reports whether the engine admits events.
func (e *Engine) Enabled() bool {
	return e.enabled
}

// SetEnabled toggles the engine. Disabling cancels everything in flight and
// detaches the listener; enabling re-attaches it.
func (e *Engine) SetEnabled(enabled bool) CancellationReport {
	if enabled == e.enabled {
		return CancellationReport{}
	}
	var report CancellationReport
	e.enabled = enabled
	if enabled {
		e.attach()
	} else {
		report = e.cancelAll()
		e.detach()
	}
	e.flush()
	return report
}

// Blur reports window focus or visibility loss. Everything in flight is
// cancelled; the engine stays enabled and bound.
func (e *Engine) Blur() CancellationReport {
	report := e.cancelAll()
	e.flush()
	return report
}

// SetListener installs the host event source, replacing (and detaching)
// any previous one.
func (e *Engine) SetListener(l Listener) {
	e.detach()
	e.listener = l
	e.attach()
}

func (e *Engine) attach() {
	if e.attached || e.listener == nil || !e.enabled || e.target == NoTarget {
		return
	}
	e.attached = true
	e.listener.Attach(e.target, e)
}

func (e *Engine) detach() {
	if !e.attached {
		return
	}
	e.attached = false
	e.listener.Detach()
}

// Device returns the active device family.
func (e *Engine) Device() DeviceFamily {
	return e.device
}

// Actions returns the currently engaged actions.
func (e *Engine) Actions() ActionSet {
	return e.actions
}

// Gestures returns every asserted gesture, touch and mouse.
func (e *Engine) Gestures() GestureSet {
	g := e.gestures
	if e.touch != nil {
		g |= e.touch.Gesture
	}
	return g
}

// TouchState returns a copy of the in-flight touch sequence, if any.
func (e *Engine) TouchState() (TouchState, bool) {
	if e.touch == nil {
		return TouchState{}, false
	}
	return *e.touch, true
}

// Tracked reports how many pointers are currently tracked.
func (e *Engine) Tracked() int {
	return e.pointers.len()
}

// HeldKeys reports how many keys are currently held.
func (e *Engine) HeldKeys() int {
	return len(e.keys)
}

// Handle processes one raw event. Events for another target, events while
// disabled and events from unrecognized devices are ignored.
func (e *Engine) Handle(ev RawEvent) {
	if ev == nil || !e.enabled || e.target == NoTarget || ev.EventTarget() != e.target {
		return
	}
	if !e.arbitrate(ev) {
		return
	}
	now := ev.EventTime()
	if now.IsZero() {
		now = e.now()
	}
	switch ev := ev.(type) {
	case PointerEvent:
		if e.device == DeviceTouch {
			e.handleTouch(ev, now)
		} else {
			e.handleMouse(ev, now)
		}
	case WheelEvent:
		e.handleWheel(ev)
	case KeyEvent:
		e.handleKey(ev)
	}
	e.flush()
}

func (e *Engine) emitInput(ev InputEvent) {
	if ev.Input != nil {
		obj := *ev.Input
		ev.Input = &obj
	}
	if ev.Device == DeviceUnknown {
		ev.Device = e.device
	}
	e.out = append(e.out, notice{input: &ev})
}

func (e *Engine) emitGesture(ev GestureEvent) {
	if ev.Input != nil {
		obj := *ev.Input
		ev.Input = &obj
	}
	if ev.Touch != nil {
		ev.Touch = ev.Touch.snapshot()
	}
	e.out = append(e.out, notice{gesture: &ev})
}

// flush delivers pending notices in the order they were queued. Classifier
// state is fully updated before flush runs, so handlers observe a consistent
// engine and may reenter it. A reentrant call queues behind whatever is
// still pending and its own flush drains the queue, so nothing recognized
// before a cancellation is lost or reordered after it.
func (e *Engine) flush() {
	for len(e.out) > 0 {
		n := e.out[0]
		e.out[0] = notice{}
		e.out = e.out[1:]
		if n.input != nil {
			e.bus.publishInput(*n.input)
		}
		if n.gesture != nil {
			if e.debug {
				e.debugf("gesture %s %s", n.gesture.Gesture, n.gesture.State)
			}
			e.bus.publishGesture(*n.gesture)
		}
	}
	e.out = nil
}
