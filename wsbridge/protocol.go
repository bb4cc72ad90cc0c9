// Package wsbridge feeds gesture engines from browser pointer events sent
// over a websocket, and streams the recognized gestures back.
package wsbridge

import (
	"fmt"
	"time"

	"github.com/phanxgames/gesture"
)

// Message is a client-to-server websocket payload.
//
//	{"t":"pointerdown","pointer":"touch","id":1,"x":10,"y":20,"pressure":0.5,"ts":120}
//	{"t":"wheel","x":10,"y":20,"dx":0,"dy":-3}
//	{"t":"keydown","key":"KeyA"}
//	{"t":"target","target":"canvas"}
//	{"t":"enabled","enabled":false}
//	{"t":"blur"}
type Message struct {
	T        string  `json:"t"`
	Pointer  string  `json:"pointer,omitempty"`
	ID       int     `json:"id,omitempty"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	Pressure float64 `json:"pressure,omitempty"`
	Button   string  `json:"button,omitempty"`
	DX       float64 `json:"dx,omitempty"`
	DY       float64 `json:"dy,omitempty"`
	Key      string  `json:"key,omitempty"`
	Target   string  `json:"target,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	// TS is the client timestamp in milliseconds since the connection
	// opened. Zero means "now".
	TS int64 `json:"ts,omitempty"`
}

// Notice is a server-to-client websocket payload.
//
//	{"t":"gesture","gesture":"tap","state":"completed","x":10,"y":20}
//	{"t":"report","cancelled":["drag"],"actions":["touch-hold"]}
//	{"t":"error","error":"unknown message \"foo\""}
type Notice struct {
	T         string   `json:"t"`
	Gesture   string   `json:"gesture,omitempty"`
	State     string   `json:"state,omitempty"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	Direction string   `json:"direction,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Rotation  float64  `json:"rotation,omitempty"`
	DX        float64  `json:"dx,omitempty"`
	DY        float64  `json:"dy,omitempty"`
	Key       string   `json:"key,omitempty"`
	Cancelled []string `json:"cancelled,omitempty"`
	Actions   []string `json:"actions,omitempty"`
	Keys      []string `json:"keys,omitempty"`
	Error     string   `json:"error,omitempty"`
}

var phases = map[string]gesture.Phase{
	"pointerdown":   gesture.PhaseDown,
	"pointermove":   gesture.PhaseMove,
	"pointerup":     gesture.PhaseUp,
	"pointercancel": gesture.PhaseCancel,
}

func parsePointer(s string) (gesture.PointerType, error) {
	switch s {
	case "", "mouse":
		return gesture.PointerMouse, nil
	case "touch":
		return gesture.PointerTouch, nil
	case "pen":
		return gesture.PointerPen, nil
	}
	return "", fmt.Errorf("unknown pointer type %q", s)
}

func parseButton(s string) (gesture.MouseButton, error) {
	switch s {
	case "":
		return gesture.MouseButtonNone, nil
	case "left":
		return gesture.MouseButtonLeft, nil
	case "middle":
		return gesture.MouseButtonMiddle, nil
	case "right":
		return gesture.MouseButtonRight, nil
	}
	return gesture.MouseButtonNone, fmt.Errorf("unknown button %q", s)
}

// decode turns an input message into a raw event. base anchors the client
// timestamp; target is the engine's current binding.
func decode(msg Message, base time.Time, target gesture.Target) (gesture.RawEvent, error) {
	var at time.Time
	if msg.TS > 0 {
		at = base.Add(time.Duration(msg.TS) * time.Millisecond)
	}
	pos := gesture.Vec2{X: msg.X, Y: msg.Y}

	if phase, ok := phases[msg.T]; ok {
		pt, err := parsePointer(msg.Pointer)
		if err != nil {
			return nil, err
		}
		b, err := parseButton(msg.Button)
		if err != nil {
			return nil, err
		}
		return gesture.PointerEvent{
			Target:      target,
			Time:        at,
			Phase:       phase,
			PointerType: pt,
			ID:          msg.ID,
			Position:    pos,
			Pressure:    msg.Pressure,
			Button:      b,
		}, nil
	}

	switch msg.T {
	case "wheel":
		return gesture.WheelEvent{
			Target:   target,
			Time:     at,
			Position: pos,
			Delta:    gesture.Vec2{X: msg.DX, Y: msg.DY},
		}, nil
	case "keydown", "keyup":
		if msg.Key == "" {
			return nil, fmt.Errorf("%s without key", msg.T)
		}
		phase := gesture.PhaseDown
		if msg.T == "keyup" {
			phase = gesture.PhaseUp
		}
		return gesture.KeyEvent{Target: target, Time: at, Phase: phase, Code: msg.Key}, nil
	}
	return nil, fmt.Errorf("unknown message %q", msg.T)
}

// encodeGesture flattens a gesture notification for the wire.
func encodeGesture(ev gesture.GestureEvent) Notice {
	n := Notice{T: "gesture", Gesture: ev.Gesture.String(), State: ev.State.String()}
	switch {
	case ev.Touch != nil:
		n.X, n.Y = ev.Touch.Midpoint.X, ev.Touch.Midpoint.Y
		n.DX, n.DY = ev.Touch.DeltaPan.X, ev.Touch.DeltaPan.Y
		n.Scale = ev.Touch.ScaleFactor
		n.Rotation = ev.Touch.Rotation
	case ev.Input != nil:
		n.X, n.Y = ev.Input.Position.X, ev.Input.Position.Y
	}
	if ev.Gesture == gesture.GestureScrollwheel {
		n.DX, n.DY = ev.Wheel.X, ev.Wheel.Y
	}
	if ev.Direction != gesture.DirectionNone {
		n.Direction = ev.Direction.String()
	}
	n.Key = ev.Key
	return n
}

// encodeReport lists what a cancellation interrupted.
func encodeReport(r gesture.CancellationReport) Notice {
	n := Notice{T: "report", Keys: r.Keys}
	for _, g := range r.Gestures {
		n.Cancelled = append(n.Cancelled, g.String())
	}
	for _, a := range r.Actions {
		n.Actions = append(n.Actions, a.String())
	}
	return n
}
