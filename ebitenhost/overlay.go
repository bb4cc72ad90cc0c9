package ebitenhost

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/gesture"
)

// Overlay is a debug panel showing the engine's live state and the most
// recent gestures. The panel image is redrawn every ~0.5 seconds.
type Overlay struct {
	img       *ebiten.Image
	engine    *gesture.Engine
	recent    []string
	sinceDraw float64
	handle    gesture.Handle
	maxRecent int
}

// NewOverlay creates an overlay for e and subscribes to its gestures.
func NewOverlay(e *gesture.Engine) *Overlay {
	o := &Overlay{
		// 240x120 fits the state lines plus five recent gestures
		img:       ebiten.NewImage(240, 120),
		engine:    e,
		maxRecent: 5,
		sinceDraw: 1,
	}
	o.handle = e.OnGesture(o.record)
	return o
}

func (o *Overlay) record(ev gesture.GestureEvent) {
	line := ev.Gesture.String() + " " + ev.State.String()
	if ev.Gesture == gesture.GestureSwipe {
		line += " " + ev.Direction.String()
	}
	o.recent = append(o.recent, line)
	if len(o.recent) > o.maxRecent {
		o.recent = o.recent[len(o.recent)-o.maxRecent:]
	}
}

// Text renders the panel contents.
func (o *Overlay) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "device: %s\n", o.engine.Device())
	fmt.Fprintf(&b, "actions: %s\n", o.engine.Actions())
	fmt.Fprintf(&b, "gestures: %s\n", o.engine.Gestures())
	if ts, ok := o.engine.TouchState(); ok {
		fmt.Fprintf(&b, "scale %.2f rot %.2f\n", ts.ScaleFactor, ts.Rotation)
	}
	for _, line := range o.recent {
		b.WriteString("> " + line + "\n")
	}
	return b.String()
}

// Draw refreshes the panel if due and draws it at the top-left of screen.
// dt is the time since the previous call, in seconds.
func (o *Overlay) Draw(screen *ebiten.Image, dt float64) {
	o.sinceDraw += dt
	if o.sinceDraw >= 0.5 {
		o.sinceDraw = 0
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, o.Text())
	}
	screen.DrawImage(o.img, nil)
}

// Close unsubscribes the overlay from the engine.
func (o *Overlay) Close() {
	o.handle.Remove()
}
