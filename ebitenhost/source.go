// Package ebitenhost feeds Ebitengine input into a gesture engine.
//
// Create a Source, install it on the engine with SetListener and call
// Source.Update from your game's Update:
//
//	src := ebitenhost.NewSource(image.Rect(0, 0, 640, 480))
//	engine.SetTarget("game")
//	engine.SetListener(src)
//
//	func (g *Game) Update() error {
//		g.src.Update()
//		return nil
//	}
package ebitenhost

import (
	"image"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/gesture"
)

// mouseID is the pointer id used for the mouse. Touch ids are offset past it.
const mouseID = 0

// pollButtons are the polled mouse buttons in gesture order.
var pollButtons = [...]struct {
	ebiten ebiten.MouseButton
	button gesture.MouseButton
}{
	{ebiten.MouseButtonLeft, gesture.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, gesture.MouseButtonMiddle},
	{ebiten.MouseButtonRight, gesture.MouseButtonRight},
}

type touchPoint struct {
	id  ebiten.TouchID
	pos image.Point
}

// frame is one tick of polled input.
type frame struct {
	cursor   image.Point
	buttons  [len(pollButtons)]bool
	touches  []touchPoint // sorted by id
	wheel    gesture.Vec2
	keysDown []ebiten.Key
	keysUp   []ebiten.Key
	focused  bool
}

// Source polls Ebitengine once per tick and turns state changes into raw
// gesture events. It implements gesture.Listener.
type Source struct {
	// Bounds is the target area in screen pixels. Positions are reported
	// relative to Bounds.Min, and presses outside Bounds are dropped. An
	// empty Bounds covers the whole screen.
	Bounds image.Rectangle

	target gesture.Target
	sink   gesture.Sink
	now    func() time.Time

	prev    frame
	primed  bool
	ignored map[ebiten.TouchID]bool

	touchBuf []ebiten.TouchID
	keyBuf   []ebiten.Key
}

// NewSource creates a detached source for the given screen area.
func NewSource(bounds image.Rectangle) *Source {
	return &Source{
		Bounds:  bounds,
		now:     time.Now,
		ignored: make(map[ebiten.TouchID]bool),
	}
}

// Attach starts forwarding input to sink, tagged with target. The first
// tick after attaching only records the current state.
func (s *Source) Attach(target gesture.Target, sink gesture.Sink) {
	s.target = target
	s.sink = sink
	s.primed = false
}

// Detach stops forwarding input.
func (s *Source) Detach() {
	s.sink = nil
	s.target = gesture.NoTarget
}

// Attached reports whether a sink is installed.
func (s *Source) Attached() bool {
	return s.sink != nil
}

// Update polls input and forwards what changed since the previous tick.
// Call it once per tick from ebiten.Game.Update.
func (s *Source) Update() {
	if s.sink == nil {
		return
	}
	s.process(s.read())
}

// read polls the current input state.
func (s *Source) read() frame {
	var f frame
	x, y := ebiten.CursorPosition()
	f.cursor = image.Pt(x, y)
	for i, b := range pollButtons {
		f.buttons[i] = ebiten.IsMouseButtonPressed(b.ebiten)
	}

	s.touchBuf = ebiten.AppendTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		tx, ty := ebiten.TouchPosition(id)
		f.touches = append(f.touches, touchPoint{id: id, pos: image.Pt(tx, ty)})
	}
	sort.Slice(f.touches, func(i, j int) bool { return f.touches[i].id < f.touches[j].id })

	wx, wy := ebiten.Wheel()
	f.wheel = gesture.Vec2{X: wx, Y: wy}

	s.keyBuf = inpututil.AppendJustPressedKeys(s.keyBuf[:0])
	f.keysDown = append(f.keysDown, s.keyBuf...)
	s.keyBuf = inpututil.AppendJustReleasedKeys(s.keyBuf[:0])
	f.keysUp = append(f.keysUp, s.keyBuf...)

	f.focused = ebiten.IsFocused()
	return f
}

// process diffs cur against the previous tick and delivers the result.
func (s *Source) process(cur frame) {
	if !s.primed {
		s.prev = cur
		s.primed = true
		return
	}
	prev := s.prev
	s.prev = cur

	if prev.focused && !cur.focused {
		s.sink.Blur()
		return
	}
	for _, ev := range s.diff(prev, cur, s.now()) {
		if s.sink == nil {
			// detached by a handler mid-tick
			return
		}
		s.sink.Handle(ev)
	}
}

func (s *Source) inside(p image.Point) bool {
	return s.Bounds.Empty() || p.In(s.Bounds)
}

func (s *Source) local(p image.Point) gesture.Vec2 {
	return gesture.Vec2{X: float64(p.X - s.Bounds.Min.X), Y: float64(p.Y - s.Bounds.Min.Y)}
}

func (s *Source) pointer(phase gesture.Phase, kind gesture.PointerType, id int, p image.Point, b gesture.MouseButton, now time.Time) gesture.PointerEvent {
	return gesture.PointerEvent{
		Target:      s.target,
		Time:        now,
		Phase:       phase,
		PointerType: kind,
		ID:          id,
		Position:    s.local(p),
		Button:      b,
	}
}

// diff turns two consecutive frames into raw events: mouse first, then
// touches, then keys.
func (s *Source) diff(prev, cur frame, now time.Time) []gesture.RawEvent {
	var out []gesture.RawEvent

	anyHeld := false
	for i := range pollButtons {
		anyHeld = anyHeld || prev.buttons[i]
	}
	if cur.cursor != prev.cursor && (anyHeld || s.inside(cur.cursor)) {
		out = append(out, s.pointer(gesture.PhaseMove, gesture.PointerMouse, mouseID, cur.cursor, gesture.MouseButtonNone, now))
	}
	for i, b := range pollButtons {
		switch {
		case cur.buttons[i] && !prev.buttons[i]:
			if s.inside(cur.cursor) {
				out = append(out, s.pointer(gesture.PhaseDown, gesture.PointerMouse, mouseID, cur.cursor, b.button, now))
			}
		case !cur.buttons[i] && prev.buttons[i]:
			out = append(out, s.pointer(gesture.PhaseUp, gesture.PointerMouse, mouseID, cur.cursor, b.button, now))
		}
	}
	if cur.wheel != (gesture.Vec2{}) && s.inside(cur.cursor) {
		out = append(out, gesture.WheelEvent{Target: s.target, Time: now, Position: s.local(cur.cursor), Delta: cur.wheel})
	}

	was := make(map[ebiten.TouchID]image.Point, len(prev.touches))
	for _, tp := range prev.touches {
		was[tp.id] = tp.pos
	}
	for _, tp := range cur.touches {
		old, ok := was[tp.id]
		delete(was, tp.id)
		id := touchID(tp.id)
		switch {
		case s.ignored[tp.id]:
		case !ok:
			if !s.inside(tp.pos) {
				s.ignored[tp.id] = true
				continue
			}
			out = append(out, s.pointer(gesture.PhaseDown, gesture.PointerTouch, id, tp.pos, gesture.MouseButtonNone, now))
		case old != tp.pos:
			out = append(out, s.pointer(gesture.PhaseMove, gesture.PointerTouch, id, tp.pos, gesture.MouseButtonNone, now))
		}
	}
	gone := make([]ebiten.TouchID, 0, len(was))
	for tid := range was {
		gone = append(gone, tid)
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	for _, tid := range gone {
		if s.ignored[tid] {
			delete(s.ignored, tid)
			continue
		}
		out = append(out, s.pointer(gesture.PhaseUp, gesture.PointerTouch, touchID(tid), was[tid], gesture.MouseButtonNone, now))
	}

	for _, k := range cur.keysDown {
		out = append(out, gesture.KeyEvent{Target: s.target, Time: now, Phase: gesture.PhaseDown, Code: k.String()})
	}
	for _, k := range cur.keysUp {
		out = append(out, gesture.KeyEvent{Target: s.target, Time: now, Phase: gesture.PhaseUp, Code: k.String()})
	}
	return out
}

func touchID(tid ebiten.TouchID) int {
	return int(tid) + mouseID + 1
}
