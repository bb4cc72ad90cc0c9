package ebitenhost

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeSink struct {
	events []gesture.RawEvent
	blurs  int
}

func (f *fakeSink) Handle(ev gesture.RawEvent) { f.events = append(f.events, ev) }

func (f *fakeSink) Blur() gesture.CancellationReport {
	f.blurs++
	return gesture.CancellationReport{}
}

func newTestSource(bounds image.Rectangle) (*Source, *fakeSink) {
	s := NewSource(bounds)
	s.now = func() time.Time { return t0 }
	sink := &fakeSink{}
	s.Attach("game", sink)
	s.process(frame{focused: true})
	return s, sink
}

func pointerAt(t *testing.T, ev gesture.RawEvent) gesture.PointerEvent {
	t.Helper()
	pe, ok := ev.(gesture.PointerEvent)
	if !ok {
		t.Fatalf("event %T, want PointerEvent", ev)
	}
	return pe
}

func TestSource_FirstTickOnlyPrimes(t *testing.T) {
	s := NewSource(image.Rectangle{})
	sink := &fakeSink{}
	s.Attach("game", sink)
	s.process(frame{focused: true, buttons: [3]bool{true}, cursor: image.Pt(5, 5)})
	if len(sink.events) != 0 {
		t.Errorf("priming tick emitted %d events", len(sink.events))
	}
}

func TestSource_MouseClick(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.process(frame{focused: true, cursor: image.Pt(10, 20), buttons: [3]bool{true}})
	s.process(frame{focused: true, cursor: image.Pt(10, 20)})

	if len(sink.events) != 3 {
		t.Fatalf("events = %d, want move, down, up", len(sink.events))
	}
	move, down, up := pointerAt(t, sink.events[0]), pointerAt(t, sink.events[1]), pointerAt(t, sink.events[2])
	if move.Phase != gesture.PhaseMove || move.Position != (gesture.Vec2{X: 10, Y: 20}) {
		t.Errorf("move = %+v", move)
	}
	if down.Phase != gesture.PhaseDown || down.Button != gesture.MouseButtonLeft || down.PointerType != gesture.PointerMouse {
		t.Errorf("down = %+v", down)
	}
	if up.Phase != gesture.PhaseUp || up.Button != gesture.MouseButtonLeft {
		t.Errorf("up = %+v", up)
	}
	if down.Target != "game" || !down.Time.Equal(t0) {
		t.Errorf("down target %q time %v", down.Target, down.Time)
	}
}

func TestSource_ButtonOrder(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.process(frame{focused: true, buttons: [3]bool{false, true, true}})
	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want 2", len(sink.events))
	}
	if b := pointerAt(t, sink.events[0]).Button; b != gesture.MouseButtonMiddle {
		t.Errorf("first button = %s, want middle", b)
	}
	if b := pointerAt(t, sink.events[1]).Button; b != gesture.MouseButtonRight {
		t.Errorf("second button = %s, want right", b)
	}
}

func TestSource_BoundsOffsetAndClip(t *testing.T) {
	s, sink := newTestSource(image.Rect(100, 100, 200, 200))

	// press outside is dropped, hover outside is dropped
	s.process(frame{focused: true, cursor: image.Pt(10, 10), buttons: [3]bool{true}})
	if len(sink.events) != 0 {
		t.Fatalf("outside press produced %d events", len(sink.events))
	}
	s.process(frame{focused: true, cursor: image.Pt(10, 10)})
	sink.events = nil

	s.process(frame{focused: true, cursor: image.Pt(150, 120), buttons: [3]bool{true}})
	if len(sink.events) != 2 {
		t.Fatalf("events = %d, want move and down", len(sink.events))
	}
	if p := pointerAt(t, sink.events[1]).Position; p != (gesture.Vec2{X: 50, Y: 20}) {
		t.Errorf("local position = %v, want (50,20)", p)
	}

	// a held drag keeps reporting outside the bounds
	sink.events = nil
	s.process(frame{focused: true, cursor: image.Pt(300, 120), buttons: [3]bool{true}})
	if len(sink.events) != 1 || pointerAt(t, sink.events[0]).Position.X != 200 {
		t.Errorf("drag outside = %+v", sink.events)
	}
}

func TestSource_Touches(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.process(frame{focused: true, touches: []touchPoint{{id: 3, pos: image.Pt(1, 1)}, {id: 5, pos: image.Pt(9, 9)}}})
	s.process(frame{focused: true, touches: []touchPoint{{id: 3, pos: image.Pt(4, 1)}, {id: 5, pos: image.Pt(9, 9)}}})
	s.process(frame{focused: true})

	var got []string
	for _, ev := range sink.events {
		pe := pointerAt(t, ev)
		if pe.PointerType != gesture.PointerTouch {
			t.Errorf("pointer type = %s", pe.PointerType)
		}
		got = append(got, pe.Phase.String()+":"+string(rune('0'+pe.ID)))
	}
	want := "down:4 down:6 move:4 up:4 up:6"
	if strings.Join(got, " ") != want {
		t.Errorf("touch events = %v, want %s", got, want)
	}
}

func TestSource_TouchOutsideIgnored(t *testing.T) {
	s, sink := newTestSource(image.Rect(0, 0, 50, 50))
	s.process(frame{focused: true, touches: []touchPoint{{id: 1, pos: image.Pt(80, 80)}}})
	s.process(frame{focused: true, touches: []touchPoint{{id: 1, pos: image.Pt(10, 10)}}})
	s.process(frame{focused: true})
	if len(sink.events) != 0 {
		t.Errorf("touch that started outside produced %d events", len(sink.events))
	}
	if len(s.ignored) != 0 {
		t.Error("ignored touch not forgotten after release")
	}
}

func TestSource_WheelAndKeys(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.process(frame{
		focused:  true,
		wheel:    gesture.Vec2{Y: -1},
		keysDown: []ebiten.Key{ebiten.KeyA},
		keysUp:   []ebiten.Key{ebiten.KeySpace},
	})
	if len(sink.events) != 3 {
		t.Fatalf("events = %d, want 3", len(sink.events))
	}
	if w, ok := sink.events[0].(gesture.WheelEvent); !ok || w.Delta.Y != -1 {
		t.Errorf("wheel = %+v", sink.events[0])
	}
	down, ok := sink.events[1].(gesture.KeyEvent)
	if !ok || down.Phase != gesture.PhaseDown || down.Code != ebiten.KeyA.String() {
		t.Errorf("key down = %+v", sink.events[1])
	}
	up, ok := sink.events[2].(gesture.KeyEvent)
	if !ok || up.Phase != gesture.PhaseUp || up.Code != ebiten.KeySpace.String() {
		t.Errorf("key up = %+v", sink.events[2])
	}
}

func TestSource_FocusLossBlurs(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.process(frame{focused: false, keysDown: []ebiten.Key{ebiten.KeyA}})
	if sink.blurs != 1 || len(sink.events) != 0 {
		t.Errorf("blurs=%d events=%d, want 1 and 0", sink.blurs, len(sink.events))
	}
	s.process(frame{focused: false})
	if sink.blurs != 1 {
		t.Error("blur should fire only on the transition")
	}
}

func TestSource_DetachStopsForwarding(t *testing.T) {
	s, sink := newTestSource(image.Rectangle{})
	s.Detach()
	if s.Attached() {
		t.Fatal("still attached")
	}
	s.Update()
	if len(sink.events) != 0 {
		t.Errorf("detached source forwarded %d events", len(sink.events))
	}
}

func TestSource_DrivesEngine(t *testing.T) {
	e := gesture.NewEngine()
	s := NewSource(image.Rectangle{})
	clock := t0
	s.now = func() time.Time { return clock }
	e.SetTarget("game")
	e.SetListener(s)
	if !s.Attached() {
		t.Fatal("engine did not attach the source")
	}

	var taps int
	e.OnGesture(func(ev gesture.GestureEvent) {
		if ev.Gesture == gesture.GestureTap {
			taps++
		}
	})
	s.process(frame{focused: true})
	s.process(frame{focused: true, touches: []touchPoint{{id: 0, pos: image.Pt(30, 30)}}})
	clock = clock.Add(50 * time.Millisecond)
	s.process(frame{focused: true})
	if taps != 1 {
		t.Errorf("taps = %d, want 1", taps)
	}

	e.SetEnabled(false)
	if s.Attached() {
		t.Error("disabling the engine should detach the source")
	}
}

func TestOverlayText(t *testing.T) {
	e := gesture.NewEngine()
	e.SetTarget("game")
	o := NewOverlay(e)
	defer o.Close()

	e.Handle(gesture.KeyEvent{Target: "game", Time: t0, Phase: gesture.PhaseDown, Code: "A"})
	e.Handle(gesture.KeyEvent{Target: "game", Time: t0, Phase: gesture.PhaseUp, Code: "A"})
	text := o.Text()
	for _, want := range []string{"device: mouse-keyboard", "actions: idle", "> key-press completed"} {
		if !strings.Contains(text, want) {
			t.Errorf("overlay text missing %q:\n%s", want, text)
		}
	}
}
