package ebitenhost

import (
	"testing"
	"time"

	"github.com/phanxgames/gesture"
)

func tapEngine(e *gesture.Engine, x, y float64) {
	e.Handle(gesture.PointerEvent{Target: "game", Time: t0, Phase: gesture.PhaseDown,
		PointerType: gesture.PointerTouch, ID: 1, Position: gesture.Vec2{X: x, Y: y}, Pressure: 0.5})
	e.Handle(gesture.PointerEvent{Target: "game", Time: t0.Add(40 * time.Millisecond), Phase: gesture.PhaseUp,
		PointerType: gesture.PointerTouch, ID: 1, Position: gesture.Vec2{X: x, Y: y}})
}

func TestMarkers_SpawnAndFade(t *testing.T) {
	e := gesture.NewEngine()
	e.SetTarget("game")
	m := NewMarkers(e)
	defer m.Close()

	tapEngine(e, 30, 40)
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	mk := m.live[0]
	if mk.gesture != gesture.GestureTap || mk.x != 30 || mk.y != 40 {
		t.Errorf("marker = %+v", mk)
	}

	m.Update(m.Duration / 2)
	if m.Len() != 1 {
		t.Fatalf("marker dropped halfway")
	}
	if a := m.live[0].a; a <= 0 || a >= 1 {
		t.Errorf("alpha halfway = %v, want within (0, 1)", a)
	}
	if s := m.live[0].s; s <= m.Size {
		t.Errorf("size halfway = %v, want > %v", s, m.Size)
	}

	m.Update(m.Duration)
	if m.Len() != 0 {
		t.Errorf("Len() after fade = %d, want 0", m.Len())
	}
}

func TestMarkers_IgnoresInFlight(t *testing.T) {
	e := gesture.NewEngine()
	e.SetTarget("game")
	m := NewMarkers(e)
	defer m.Close()

	e.Handle(gesture.PointerEvent{Target: "game", Time: t0, Phase: gesture.PhaseDown,
		PointerType: gesture.PointerMouse, Button: gesture.MouseButtonLeft})
	e.Handle(gesture.PointerEvent{Target: "game", Time: t0, Phase: gesture.PhaseMove,
		PointerType: gesture.PointerMouse, Position: gesture.Vec2{X: 80}})
	if m.Len() != 0 {
		t.Errorf("moved drag left %d markers", m.Len())
	}
	e.Handle(gesture.PointerEvent{Target: "game", Time: t0, Phase: gesture.PhaseUp,
		PointerType: gesture.PointerMouse, Button: gesture.MouseButtonLeft, Position: gesture.Vec2{X: 80}})
	if m.Len() != 1 || m.live[0].gesture != gesture.GestureLeftDrag {
		t.Errorf("markers after drag end = %d", m.Len())
	}
}

func TestMarkers_Close(t *testing.T) {
	e := gesture.NewEngine()
	e.SetTarget("game")
	m := NewMarkers(e)
	m.Close()
	tapEngine(e, 0, 0)
	if m.Len() != 0 {
		t.Errorf("closed markers recorded %d", m.Len())
	}
}
