package gesture

import "time"

var mouseButtons = [...]MouseButton{MouseButtonLeft, MouseButtonMiddle, MouseButtonRight}

func (e *Engine) handleMouse(ev PointerEvent, now time.Time) {
	switch ev.Phase {
	case PhaseDown:
		e.mouseDown(ev)
	case PhaseMove:
		e.mouseMove(ev)
	case PhaseUp:
		e.mouseUp(ev, now)
	case PhaseCancel:
		e.cancelGestures(nil)
		e.cancelActions()
	}
}

func (e *Engine) mouseDown(ev PointerEvent) {
	a := buttonAction(ev.Button)
	if a == ActionIdle {
		return
	}
	obj := e.pointers.track(ev)
	first := !e.mouseHeld()
	if !e.actions.Insert(a) {
		return
	}
	e.buttonDown[ev.Button] = obj.Position
	if first {
		e.pointers.reset(obj)
	}
	e.emitInput(InputEvent{State: StateBegan, Action: a, Event: ev, Input: obj})
}

// mouseMove drives the drag gesture of every held button. A move with no
// button held is reported on the input channel only.
func (e *Engine) mouseMove(ev PointerEvent) {
	obj := e.pointers.track(ev)
	action := ActionMouseMove
	var drags []Gesture
	for _, b := range mouseButtons {
		if !e.actions.Contains(buttonAction(b)) {
			continue
		}
		if action == ActionMouseMove {
			action = buttonAction(b)
		}
		drags = append(drags, buttonDrag(b))
	}
	e.emitInput(InputEvent{State: StateMoved, Action: action, Event: ev, Input: obj})
	for _, g := range drags {
		e.gestures.Insert(g)
		e.emitGesture(GestureEvent{Gesture: g, State: StateMoved, Input: obj})
	}
}

func (e *Engine) mouseUp(ev PointerEvent, now time.Time) {
	a := buttonAction(ev.Button)
	if !e.actions.Contains(a) {
		return
	}
	obj := e.pointers.track(ev)
	e.actions.Remove(a)
	e.emitInput(InputEvent{State: StateEnded, Action: a, Event: ev, Input: obj})

	// each button measures travel from its own down position
	inside := e.buttonDown[ev.Button].Dist(obj.Position) <= e.thresholds.ClickMaxDistance
	switch ev.Button {
	case MouseButtonLeft:
		if inside {
			e.recognizeClick(obj, now)
		}
	case MouseButtonMiddle:
		e.emitGesture(GestureEvent{Gesture: GestureMiddleClick, State: StateCompleted, Input: obj})
	case MouseButtonRight:
		if inside {
			e.emitGesture(GestureEvent{Gesture: GestureRightClick, State: StateCompleted, Input: obj})
		}
	}
	g := buttonDrag(ev.Button)
	e.gestures.Remove(g)
	e.emitGesture(GestureEvent{Gesture: g, State: StateEnded, Input: obj})
	if !e.mouseHeld() {
		e.pointers.untrack(obj.ID)
	}
}

// mouseHeld reports whether any mouse button is down.
func (e *Engine) mouseHeld() bool {
	for _, b := range mouseButtons {
		if e.actions.Contains(buttonAction(b)) {
			return true
		}
	}
	return false
}

func (e *Engine) recognizeClick(obj *InputObject, now time.Time) {
	th := e.thresholds
	if last := e.lastClick; last != nil &&
		now.Sub(last.at) <= th.DoubleClickInterval &&
		last.pos.Dist(obj.Position) <= th.DoubleClickDistance {
		e.lastClick = nil
		e.emitGesture(GestureEvent{Gesture: GestureDoubleClick, State: StateCompleted, Input: obj})
		return
	}
	e.lastClick = &tapRecord{at: now, pos: obj.Position}
	e.emitGesture(GestureEvent{Gesture: GestureLeftClick, State: StateCompleted, Input: obj})
}

// handleWheel reports a scroll step. Wheel input holds no state.
func (e *Engine) handleWheel(ev WheelEvent) {
	e.emitInput(InputEvent{State: StateMoved, Event: ev})
	e.emitGesture(GestureEvent{Gesture: GestureScrollwheel, State: StateMoved, Wheel: ev.Delta})
}
