package gesture

import "time"

// RawEvent is a low-level input event delivered by a host. It is a closed
// sum over PointerEvent, WheelEvent and KeyEvent.
type RawEvent interface {
	// EventTarget is the element the event originated from.
	EventTarget() Target
	// EventTime is when the event happened. A zero time means "now".
	EventTime() time.Time

	rawEvent()
}

// Phase is the edge a raw event reports.
type Phase uint8

const (
	PhaseDown   Phase = iota // pointer/button/key pressed
	PhaseMove                // pointer moved
	PhaseUp                  // pointer/button/key released
	PhaseCancel              // host aborted the pointer
)

var phaseNames = [...]string{
	PhaseDown:   "down",
	PhaseMove:   "move",
	PhaseUp:     "up",
	PhaseCancel: "cancel",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// PointerType is the device hint carried by a pointer event.
type PointerType string

const (
	PointerTouch PointerType = "touch"
	PointerPen   PointerType = "pen"
	PointerMouse PointerType = "mouse"
)

// PointerEvent is a touch, pen or mouse pointer event.
type PointerEvent struct {
	Target      Target
	Time        time.Time
	Phase       Phase
	PointerType PointerType
	ID          int
	Position    Vec2        // in the target's local space
	Pressure    float64     // touch/pen only, 0..1
	Button      MouseButton // mouse only; MouseButtonNone is a plain move
}

func (e PointerEvent) EventTarget() Target  { return e.Target }
func (e PointerEvent) EventTime() time.Time { return e.Time }
func (PointerEvent) rawEvent()              {}

// WheelEvent is a scroll-wheel event.
type WheelEvent struct {
	Target   Target
	Time     time.Time
	Position Vec2
	Delta    Vec2
}

func (e WheelEvent) EventTarget() Target  { return e.Target }
func (e WheelEvent) EventTime() time.Time { return e.Time }
func (WheelEvent) rawEvent()              {}

// KeyEvent is a keyboard event. Only PhaseDown and PhaseUp are meaningful.
type KeyEvent struct {
	Target Target
	Time   time.Time
	Phase  Phase
	Code   string
}

func (e KeyEvent) EventTarget() Target  { return e.Target }
func (e KeyEvent) EventTime() time.Time { return e.Time }
func (KeyEvent) rawEvent()              {}

// InputEvent is published on the input channel for every admitted raw
// event and for every cancellation.
type InputEvent struct {
	State  InputState
	Action Action
	Device DeviceFamily
	Event  RawEvent     // nil for cancellations and device changes
	Input  *InputObject // tracked pointer, when the event was a pointer event
	Key    string       // key code for key events and key cancellations
}

// GestureEvent is published on the gesture channel for recognized gestures.
// Exactly one payload is meaningful per gesture family: Input for mouse and
// single-touch gestures, Touch for two-finger gestures, Key for key presses,
// Wheel for scroll-wheel deltas.
type GestureEvent struct {
	Gesture   Gesture
	State     InputState
	Input     *InputObject
	Touch     *TouchState
	Key       string
	Wheel     Vec2
	Direction Direction // swipes only
}
