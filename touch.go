package gesture

import (
	"math"
	"time"
)

// TouchState describes the in-flight one- or two-finger touch sequence.
// The failed gates only ever go from false to true; a fresh TouchState is
// allocated for every sequence.
type TouchState struct {
	Gesture GestureSet // asserted touch gestures

	Touch0 *InputObject // first finger
	Touch1 *InputObject // second finger, nil for single-finger sequences

	Midpoint  Vec2 // two-finger midpoint, or the finger position
	DeltaPan  Vec2 // midpoint displacement of the last pan step
	Pressure  float64
	Direction Direction // resolved swipe direction
	Distance  float64   // finger separation, or single-finger travel

	ScaleFactor   float64 // separation relative to InitLength at the last pinch step
	DeltaScale    float64
	Rotation      float64 // radians relative to InitAngle at the last rotate step
	DeltaRotation float64

	InitTime   time.Time
	InitAngle  float64
	InitLength float64

	FailedTap   bool
	FailedDrag  bool
	FailedPress bool
	FailedSwipe bool
}

// snapshot deep-copies ts so notification payloads do not alias live state.
func (ts *TouchState) snapshot() *TouchState {
	c := *ts
	if ts.Touch0 != nil {
		t0 := *ts.Touch0
		c.Touch0 = &t0
	}
	if ts.Touch1 != nil {
		t1 := *ts.Touch1
		c.Touch1 = &t1
	}
	return &c
}

func (ts *TouchState) twoFinger() bool {
	return ts.Touch1 != nil
}

func (ts *TouchState) owns(obj *InputObject) bool {
	return obj == ts.Touch0 || (ts.Touch1 != nil && obj == ts.Touch1)
}

// touchPayload builds the gesture notification for g: two-finger gestures
// carry the TouchState, single-finger ones carry the first finger.
func touchPayload(ts *TouchState, g Gesture) GestureEvent {
	switch g {
	case GesturePan, GesturePinch, GestureRotate:
		return GestureEvent{Gesture: g, Touch: ts}
	}
	return GestureEvent{Gesture: g, Input: ts.Touch0, Direction: ts.Direction}
}

func (e *Engine) handleTouch(ev PointerEvent, now time.Time) {
	switch ev.Phase {
	case PhaseDown:
		e.touchBegan(ev, now)
	case PhaseMove:
		e.touchMoved(ev, now)
	case PhaseUp:
		e.touchEnded(ev, now)
	case PhaseCancel:
		e.touchCancelled(ev)
	}
}

func (e *Engine) touchBegan(ev PointerEvent, now time.Time) {
	obj := e.pointers.track(ev)
	e.pointers.reset(obj)
	e.actions.Insert(ActionTouchHold)
	e.emitInput(InputEvent{State: StateBegan, Action: ActionTouchHold, Event: ev, Input: obj})

	ts := e.touch
	switch {
	case ts == nil:
		e.touch = &TouchState{
			Touch0:      obj,
			Midpoint:    obj.Position,
			Pressure:    ev.Pressure,
			ScaleFactor: 1,
			InitTime:    now,
		}
	case !ts.twoFinger() && ts.Touch0 != obj:
		e.secondFinger(ts, obj)
	}
}

// secondFinger turns a single-finger sequence into a two-finger one. The
// single-finger gestures are out of reach from here on.
func (e *Engine) secondFinger(ts *TouchState, obj *InputObject) {
	ts.Touch1 = obj
	v := obj.Position.Sub(ts.Touch0.Position)
	ts.InitLength = v.Len()
	ts.InitAngle = angleFromUp(v)
	ts.Distance = ts.InitLength
	ts.ScaleFactor = 1
	ts.DeltaScale = 0
	ts.Rotation = 0
	ts.DeltaRotation = 0
	ts.Midpoint = ts.Touch0.Position.Add(obj.Position).Scale(0.5)
	ts.DeltaPan = Vec2{}
	ts.FailedTap = true
	ts.FailedDrag = true
	ts.FailedPress = true
	ts.FailedSwipe = true
	e.releaseTouch(ts, GesturePan)
	e.releaseTouch(ts, GestureDrag)
}

func (e *Engine) touchMoved(ev PointerEvent, now time.Time) {
	if _, ok := e.pointers.lookup(ev.ID); !ok {
		return
	}
	obj := e.pointers.track(ev)
	e.actions.Insert(ActionTouchMove)
	e.emitInput(InputEvent{State: StateMoved, Action: ActionTouchMove, Event: ev, Input: obj})

	ts := e.touch
	if ts == nil || !ts.owns(obj) {
		return
	}
	if ts.twoFinger() {
		e.twoFingerMoved(ts)
		return
	}
	e.oneFingerMoved(ts, obj, ev.Pressure, now)
}

func (e *Engine) oneFingerMoved(ts *TouchState, obj *InputObject, pressure float64, now time.Time) {
	th := e.thresholds
	if pressure > ts.Pressure {
		ts.Pressure = pressure
	}
	if !ts.FailedTap || !ts.FailedPress || !ts.FailedSwipe {
		elapsed := now.Sub(ts.InitTime)
		if elapsed > th.TapMaxDuration {
			ts.FailedTap = true
		}
		if elapsed > th.PressMaxDuration && ts.Pressure < th.HardPressPressure {
			ts.FailedPress = true
		}
		if elapsed > th.SwipeMaxDuration {
			ts.FailedSwipe = true
		}
	}
	ts.Midpoint = obj.Position
	ts.Distance = obj.Travel()
	if ts.FailedDrag {
		return
	}
	if obj.Delta.Len() > th.MoveEpsilon {
		e.assertTouch(ts, GestureDrag)
		e.lastTap = nil
		return
	}
	e.releaseTouch(ts, GestureDrag)
}

func (e *Engine) twoFingerMoved(ts *TouchState) {
	th := e.thresholds
	v := ts.Touch1.Position.Sub(ts.Touch0.Position)
	ts.Distance = v.Len()

	if ts.InitLength > 0 {
		scale := ts.Distance / ts.InitLength
		if math.Abs(scale-ts.ScaleFactor) > th.PinchEpsilon {
			ts.DeltaScale = scale - ts.ScaleFactor
			ts.ScaleFactor = scale
			e.assertTouch(ts, GesturePinch)
		} else {
			ts.DeltaScale = 0
			e.releaseTouch(ts, GesturePinch)
		}
	}

	rotation := wrapAngle(angleFromUp(v) - ts.InitAngle)
	if d := wrapAngle(rotation - ts.Rotation); math.Abs(d) > th.RotateEpsilon {
		ts.DeltaRotation = d
		ts.Rotation = rotation
		e.assertTouch(ts, GestureRotate)
	} else {
		ts.DeltaRotation = 0
		e.releaseTouch(ts, GestureRotate)
	}

	mid := ts.Touch0.Position.Add(ts.Touch1.Position).Scale(0.5)
	step := mid.Sub(ts.Midpoint)
	ts.Midpoint = mid
	if step.Len() > th.MoveEpsilon {
		ts.DeltaPan = step
		e.assertTouch(ts, GesturePan)
		e.lastTap = nil
	} else {
		ts.DeltaPan = Vec2{}
		e.releaseTouch(ts, GesturePan)
	}
}

func (e *Engine) touchEnded(ev PointerEvent, now time.Time) {
	if _, ok := e.pointers.lookup(ev.ID); !ok {
		return
	}
	obj := e.pointers.track(ev)
	e.pointers.untrack(ev.ID)

	if ts := e.touch; ts != nil && ts.owns(obj) {
		e.touch = nil
		e.endSequence(ts, obj, now)
	}
	e.releaseTouchActions(StateEnded, ev, obj)
}

// endSequence classifies a finished touch sequence. ts has already been
// detached from the engine.
func (e *Engine) endSequence(ts *TouchState, obj *InputObject, now time.Time) {
	e.releaseTouch(ts, GestureDrag)
	if ts.twoFinger() {
		e.cancelTouchGestures(ts)
		return
	}
	if ts.FailedTap && ts.FailedPress && ts.FailedSwipe {
		return
	}

	th := e.thresholds
	elapsed := now.Sub(ts.InitTime)
	ts.Distance = obj.Travel()
	velocity := math.Inf(1)
	if s := elapsed.Seconds(); s > 0 {
		velocity = ts.Distance / s
	}

	switch {
	case !ts.FailedSwipe && elapsed <= th.SwipeMaxDuration &&
		ts.Distance > th.TapMaxDistance && velocity >= th.SwipeMinVelocity:
		ts.Direction = DirectionOf(obj.Initial, obj.Position)
		e.lastTap = nil
		e.emitGesture(GestureEvent{Gesture: GestureSwipe, State: StateCompleted, Input: obj, Direction: ts.Direction})
	case !ts.FailedPress && elapsed >= th.PressMinDuration &&
		(elapsed <= th.PressMaxDuration || ts.Pressure >= th.HardPressPressure) &&
		ts.Distance <= th.TapMaxDistance:
		e.lastTap = nil
		e.emitGesture(GestureEvent{Gesture: GesturePress, State: StateCompleted, Input: obj})
	case !ts.FailedTap && elapsed <= th.TapMaxDuration && ts.Distance <= th.TapMaxDistance:
		e.recognizeTap(obj, now)
	}
}

func (e *Engine) recognizeTap(obj *InputObject, now time.Time) {
	th := e.thresholds
	if last := e.lastTap; last != nil &&
		now.Sub(last.at) <= th.DoubleTapInterval &&
		last.pos.Dist(obj.Position) <= th.DoubleTapDistance {
		e.lastTap = nil
		e.emitGesture(GestureEvent{Gesture: GestureDoubleTap, State: StateCompleted, Input: obj})
		return
	}
	e.lastTap = &tapRecord{at: now, pos: obj.Position}
	e.emitGesture(GestureEvent{Gesture: GestureTap, State: StateCompleted, Input: obj})
}

func (e *Engine) touchCancelled(ev PointerEvent) {
	obj, ok := e.pointers.lookup(ev.ID)
	if !ok {
		return
	}
	e.pointers.untrack(ev.ID)
	if ts := e.touch; ts != nil && ts.owns(obj) {
		e.touch = nil
		e.cancelTouchGestures(ts)
	}
	e.releaseTouchActions(StateCancelled, ev, obj)
}

// releaseTouchActions reports a lifted finger and clears the touch actions
// once no finger remains down.
func (e *Engine) releaseTouchActions(state InputState, ev PointerEvent, obj *InputObject) {
	e.emitInput(InputEvent{State: state, Action: ActionTouchHold, Event: ev, Input: obj})
	if e.pointers.len() == 0 {
		e.actions.Remove(ActionTouchHold)
		e.actions.Remove(ActionTouchMove)
	}
}

// assertTouch emits Began the first time g is asserted and Moved after.
func (e *Engine) assertTouch(ts *TouchState, g Gesture) {
	ev := touchPayload(ts, g)
	ev.State = StateMoved
	if ts.Gesture.Insert(g) {
		ev.State = StateBegan
	}
	e.emitGesture(ev)
}

// releaseTouch ends g if it is asserted.
func (e *Engine) releaseTouch(ts *TouchState, g Gesture) {
	if !ts.Gesture.Remove(g) {
		return
	}
	ev := touchPayload(ts, g)
	ev.State = StateEnded
	e.emitGesture(ev)
}
