package gesture

// InputObject is the tracked state of one live pointer.
type InputObject struct {
	ID       int
	Event    RawEvent // the event that last updated this object
	Initial  Vec2     // position when the current gesture began
	Position Vec2     // current position
	// Delta is previous minus current position on X and current minus
	// previous on Y, so that upward motion on screen is positive.
	Delta Vec2
}

// Travel returns the distance between Initial and Position.
func (o *InputObject) Travel() float64 {
	return o.Initial.Dist(o.Position)
}

// pointerTracker maps pointer ids to their InputObject. It never holds more
// than one entry per id.
type pointerTracker struct {
	objects map[int]*InputObject
}

func newPointerTracker() pointerTracker {
	return pointerTracker{objects: make(map[int]*InputObject)}
}

// track creates or updates the object for ev.ID.
func (t *pointerTracker) track(ev PointerEvent) *InputObject {
	obj, ok := t.objects[ev.ID]
	if !ok {
		obj = &InputObject{
			ID:       ev.ID,
			Event:    ev,
			Initial:  ev.Position,
			Position: ev.Position,
		}
		t.objects[ev.ID] = obj
		return obj
	}
	prev := obj.Position
	obj.Delta = Vec2{X: prev.X - ev.Position.X, Y: ev.Position.Y - prev.Y}
	obj.Position = ev.Position
	obj.Event = ev
	return obj
}

// lookup returns the object for id, if tracked.
func (t *pointerTracker) lookup(id int) (*InputObject, bool) {
	obj, ok := t.objects[id]
	return obj, ok
}

// reset latches the current position as the gesture origin.
func (t *pointerTracker) reset(obj *InputObject) {
	obj.Initial = obj.Position
	obj.Delta = Vec2{}
}

// untrack forgets id.
func (t *pointerTracker) untrack(id int) {
	delete(t.objects, id)
}

// clear forgets every pointer.
func (t *pointerTracker) clear() {
	for id := range t.objects {
		delete(t.objects, id)
	}
}

// len reports how many pointers are tracked.
func (t *pointerTracker) len() int {
	return len(t.objects)
}
