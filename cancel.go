package gesture

import "sort"

// CancellationReport lists what a cancellation interrupted.
type CancellationReport struct {
	Gestures []Gesture
	Actions  []Action
	Keys     []string
}

// Empty reports whether nothing was in flight.
func (r CancellationReport) Empty() bool {
	return len(r.Gestures) == 0 && len(r.Actions) == 0 && len(r.Keys) == 0
}

// cancelAll runs the full cancellation sequence. Its notices queue behind
// any still pending.
func (e *Engine) cancelAll() CancellationReport {
	r := CancellationReport{Keys: e.cancelKeyStates()}
	r.Gestures = e.cancelGestures(e.touch)
	e.touch = nil
	r.Actions = e.cancelActions()
	e.lastTap, e.lastClick = nil, nil
	if e.debug && !r.Empty() {
		e.debugf("cancelled gestures=%v actions=%v keys=%v", r.Gestures, r.Actions, r.Keys)
	}
	return r
}

// cancelKeyStates releases every held key, in code order.
func (e *Engine) cancelKeyStates() []string {
	if len(e.keys) == 0 {
		return nil
	}
	codes := make([]string, 0, len(e.keys))
	for code := range e.keys {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		delete(e.keys, code)
		e.emitInput(InputEvent{State: StateCancelled, Action: ActionKey, Key: code})
	}
	e.actions.Remove(ActionKey)
	return codes
}

// cancelGestures cancels every asserted gesture, touch gestures of ts first.
func (e *Engine) cancelGestures(ts *TouchState) []Gesture {
	var out []Gesture
	if ts != nil {
		out = e.cancelTouchGestures(ts)
	}
	for _, g := range e.gestures.Slice() {
		e.gestures.Remove(g)
		e.emitGesture(GestureEvent{Gesture: g, State: StateCancelled})
		out = append(out, g)
	}
	return out
}

func (e *Engine) cancelTouchGestures(ts *TouchState) []Gesture {
	var out []Gesture
	for _, g := range ts.Gesture.Slice() {
		ts.Gesture.Remove(g)
		ev := touchPayload(ts, g)
		ev.State = StateCancelled
		e.emitGesture(ev)
		out = append(out, g)
	}
	return out
}

// cancelActions releases every engaged pointer action and forgets all
// pointers. ActionKey belongs to the held keys and is released by
// cancelKeyStates.
func (e *Engine) cancelActions() []Action {
	var out []Action
	for _, a := range e.actions.Slice() {
		if a == ActionKey {
			continue
		}
		e.actions.Remove(a)
		e.emitInput(InputEvent{State: StateCancelled, Action: a})
		out = append(out, a)
	}
	e.pointers.clear()
	return out
}
