package gesture

// channel identifies one of the two subscription channels.
type channel uint8

const (
	channelInput channel = iota
	channelGesture
)

type inputHandler struct {
	id      uint32
	fn      func(InputEvent)
	removed bool
}

type gestureHandler struct {
	id      uint32
	fn      func(GestureEvent)
	removed bool
}

// bus is the synchronous publish/subscribe surface. Handler slices are
// copy-on-write: publishing ranges over a snapshot, and removal builds a new
// slice, so handlers may subscribe or unsubscribe while being dispatched.
type bus struct {
	input   []*inputHandler
	gesture []*gestureHandler
	nextID  uint32
}

// Handle allows removing a registered handler.
type Handle struct {
	id      uint32
	bus     *bus
	channel channel
}

// Remove unregisters the handler. A removed handler never fires again, even
// if it was removed during the dispatch that would have reached it.
// Removing twice is a no-op.
func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	switch h.channel {
	case channelInput:
		h.bus.input = removeInputHandler(h.bus.input, h.id)
	case channelGesture:
		h.bus.gesture = removeGestureHandler(h.bus.gesture, h.id)
	}
}

func removeInputHandler(s []*inputHandler, id uint32) []*inputHandler {
	for i, h := range s {
		if h.id == id {
			h.removed = true
			out := make([]*inputHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func removeGestureHandler(s []*gestureHandler, id uint32) []*gestureHandler {
	for i, h := range s {
		if h.id == id {
			h.removed = true
			out := make([]*gestureHandler, 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

func (b *bus) onInput(fn func(InputEvent)) Handle {
	b.nextID++
	id := b.nextID
	b.input = append(b.input, &inputHandler{id: id, fn: fn})
	return Handle{id: id, bus: b, channel: channelInput}
}

func (b *bus) onGesture(fn func(GestureEvent)) Handle {
	b.nextID++
	id := b.nextID
	b.gesture = append(b.gesture, &gestureHandler{id: id, fn: fn})
	return Handle{id: id, bus: b, channel: channelGesture}
}

func (b *bus) publishInput(ev InputEvent) {
	for _, h := range b.input {
		if !h.removed {
			h.fn(ev)
		}
	}
}

func (b *bus) publishGesture(ev GestureEvent) {
	for _, h := range b.gesture {
		if !h.removed {
			h.fn(ev)
		}
	}
}
