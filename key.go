package gesture

// handleKey tracks held keys. Auto-repeat downs and ups for keys that were
// never seen going down are dropped.
func (e *Engine) handleKey(ev KeyEvent) {
	if ev.Code == "" {
		return
	}
	switch ev.Phase {
	case PhaseDown:
		if e.keys[ev.Code] {
			return
		}
		e.keys[ev.Code] = true
		e.actions.Insert(ActionKey)
		e.emitInput(InputEvent{State: StateBegan, Action: ActionKey, Event: ev, Key: ev.Code})
	case PhaseUp:
		if !e.keys[ev.Code] {
			return
		}
		delete(e.keys, ev.Code)
		if len(e.keys) == 0 {
			e.actions.Remove(ActionKey)
		}
		e.emitInput(InputEvent{State: StateEnded, Action: ActionKey, Event: ev, Key: ev.Code})
		e.emitGesture(GestureEvent{Gesture: GestureKeyPress, State: StateCompleted, Key: ev.Code})
	}
}
