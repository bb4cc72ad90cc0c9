package gesture

import "time"

// DefaultInjectStep is the spacing between synthetic events, one frame at
// 60 TPS.
const DefaultInjectStep = 16 * time.Millisecond

// Injector feeds synthetic input into an Engine on a virtual clock. Every
// event is stamped with the current clock, which then advances by Step.
// Positions are in the target's local space.
type Injector struct {
	engine *Engine
	clock  time.Time
	Step   time.Duration
}

// NewInjector returns an injector for e whose clock starts at start.
func NewInjector(e *Engine, start time.Time) *Injector {
	return &Injector{engine: e, clock: start, Step: DefaultInjectStep}
}

// Now returns the virtual clock.
func (in *Injector) Now() time.Time {
	return in.clock
}

// Wait advances the clock without sending anything.
func (in *Injector) Wait(d time.Duration) {
	in.clock = in.clock.Add(d)
}

func (in *Injector) send(ev RawEvent) {
	in.engine.Handle(ev)
	in.clock = in.clock.Add(in.Step)
}

func (in *Injector) pointer(kind PointerType, phase Phase, id int, x, y, pressure float64, b MouseButton) {
	in.send(PointerEvent{
		Target:      in.engine.Target(),
		Time:        in.clock,
		Phase:       phase,
		PointerType: kind,
		ID:          id,
		Position:    Vec2{X: x, Y: y},
		Pressure:    pressure,
		Button:      b,
	})
}

// TouchDown sends a finger-down for id.
func (in *Injector) TouchDown(id int, x, y, pressure float64) {
	in.pointer(PointerTouch, PhaseDown, id, x, y, pressure, MouseButtonNone)
}

// TouchMove sends a finger move for id.
func (in *Injector) TouchMove(id int, x, y, pressure float64) {
	in.pointer(PointerTouch, PhaseMove, id, x, y, pressure, MouseButtonNone)
}

// TouchUp sends a finger lift for id.
func (in *Injector) TouchUp(id int, x, y float64) {
	in.pointer(PointerTouch, PhaseUp, id, x, y, 0, MouseButtonNone)
}

// TouchCancel sends a host abort for id.
func (in *Injector) TouchCancel(id int) {
	in.pointer(PointerTouch, PhaseCancel, id, 0, 0, 0, MouseButtonNone)
}

// Tap sends a one-finger down and up at the same point.
func (in *Injector) Tap(x, y float64) {
	in.TouchDown(0, x, y, 0.5)
	in.TouchUp(0, x, y)
}

// Press holds one finger still for hold before lifting it. A move is sent
// halfway so the press deadlines are evaluated.
func (in *Injector) Press(x, y float64, hold time.Duration) {
	down := in.clock
	in.TouchDown(0, x, y, 0.5)
	in.clock = down.Add(hold / 2)
	in.TouchMove(0, x, y, 0.5)
	in.clock = down.Add(hold)
	in.TouchUp(0, x, y)
}

// Drag sends a one-finger drag: down at from, frames-2 interpolated moves
// and up at to. Minimum frames is 2.
func (in *Injector) Drag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.TouchDown(0, fromX, fromY, 0.5)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.TouchMove(0, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, 0.5)
	}
	in.TouchUp(0, toX, toY)
}

// Pinch places two fingers on a horizontal line centered on (cx, cy),
// spreads them from one separation to another over frames moves and lifts
// both.
func (in *Injector) Pinch(cx, cy, from, to float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	in.TouchDown(0, cx-from/2, cy, 0.5)
	in.TouchDown(1, cx+from/2, cy, 0.5)
	sep := from
	for i := 1; i <= frames; i++ {
		sep = from + (to-from)*float64(i)/float64(frames)
		in.TouchMove(1, cx-from/2+sep, cy, 0.5)
	}
	in.TouchUp(1, cx-from/2+sep, cy)
	in.TouchUp(0, cx-from/2, cy)
}

// MouseMove sends a hover or button-held move.
func (in *Injector) MouseMove(x, y float64) {
	in.pointer(PointerMouse, PhaseMove, 0, x, y, 0, MouseButtonNone)
}

// MouseDown presses b at (x, y).
func (in *Injector) MouseDown(b MouseButton, x, y float64) {
	in.pointer(PointerMouse, PhaseDown, 0, x, y, 0, b)
}

// MouseUp releases b at (x, y).
func (in *Injector) MouseUp(b MouseButton, x, y float64) {
	in.pointer(PointerMouse, PhaseUp, 0, x, y, 0, b)
}

// Click presses and releases b at the same point.
func (in *Injector) Click(b MouseButton, x, y float64) {
	in.MouseDown(b, x, y)
	in.MouseUp(b, x, y)
}

// MouseDrag holds b while moving from one point to another over frames
// events in total, mirroring Drag.
func (in *Injector) MouseDrag(b MouseButton, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.MouseDown(b, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.MouseMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.MouseUp(b, toX, toY)
}

// Wheel sends one scroll step.
func (in *Injector) Wheel(dx, dy float64) {
	in.send(WheelEvent{Target: in.engine.Target(), Time: in.clock, Delta: Vec2{X: dx, Y: dy}})
}

// KeyDown presses code.
func (in *Injector) KeyDown(code string) {
	in.send(KeyEvent{Target: in.engine.Target(), Time: in.clock, Phase: PhaseDown, Code: code})
}

// KeyUp releases code.
func (in *Injector) KeyUp(code string) {
	in.send(KeyEvent{Target: in.engine.Target(), Time: in.clock, Phase: PhaseUp, Code: code})
}

// Key presses and releases code.
func (in *Injector) Key(code string) {
	in.KeyDown(code)
	in.KeyUp(code)
}
