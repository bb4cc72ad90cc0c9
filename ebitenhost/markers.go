package ebitenhost

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/gesture"
)

// DefaultMarkerDuration is how long a marker takes to fade, in seconds.
const DefaultMarkerDuration float32 = 0.6

// marker is one fading square left where a gesture completed.
type marker struct {
	gesture gesture.Gesture
	x, y    float64
	alpha   *gween.Tween
	size    *gween.Tween
	a, s    float32
}

// Markers draws a fading marker wherever a gesture completes or ends, so
// recognized gestures can be checked by eye.
type Markers struct {
	// Duration and Ease apply to markers created after they are set.
	Duration float32
	Ease     ease.TweenFunc
	// Size is the starting marker edge in pixels.
	Size float32

	dot    *ebiten.Image
	live   []*marker
	handle gesture.Handle
}

// NewMarkers subscribes to e's gestures.
func NewMarkers(e *gesture.Engine) *Markers {
	m := &Markers{
		Duration: DefaultMarkerDuration,
		Ease:     ease.OutQuad,
		Size:     24,
	}
	m.handle = e.OnGesture(m.record)
	return m
}

func (m *Markers) record(ev gesture.GestureEvent) {
	if ev.State != gesture.StateCompleted && ev.State != gesture.StateEnded {
		return
	}
	var pos gesture.Vec2
	switch {
	case ev.Touch != nil:
		pos = ev.Touch.Midpoint
	case ev.Input != nil:
		pos = ev.Input.Position
	default:
		return
	}
	m.live = append(m.live, &marker{
		gesture: ev.Gesture,
		x:       pos.X,
		y:       pos.Y,
		alpha:   gween.New(1, 0, m.Duration, m.Ease),
		size:    gween.New(m.Size, m.Size*2, m.Duration, m.Ease),
		a:       1,
		s:       m.Size,
	})
}

// Len returns the number of markers still fading.
func (m *Markers) Len() int {
	return len(m.live)
}

// Update advances every marker by dt seconds and drops finished ones.
func (m *Markers) Update(dt float32) {
	kept := m.live[:0]
	for _, mk := range m.live {
		var done bool
		mk.a, done = mk.alpha.Update(dt)
		mk.s, _ = mk.size.Update(dt)
		if !done {
			kept = append(kept, mk)
		}
	}
	for i := len(kept); i < len(m.live); i++ {
		m.live[i] = nil
	}
	m.live = kept
}

// Draw renders the live markers centered on their gesture positions.
func (m *Markers) Draw(screen *ebiten.Image) {
	if len(m.live) == 0 {
		return
	}
	if m.dot == nil {
		m.dot = ebiten.NewImage(1, 1)
		m.dot.Fill(color.White)
	}
	for _, mk := range m.live {
		var op ebiten.DrawImageOptions
		s := float64(mk.s)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(mk.x-s/2, mk.y-s/2)
		op.ColorScale.Scale(markerColor(mk.gesture))
		op.ColorScale.ScaleAlpha(mk.a)
		screen.DrawImage(m.dot, &op)
	}
}

// Close unsubscribes from the engine and drops live markers.
func (m *Markers) Close() {
	m.handle.Remove()
	m.live = nil
}

// markerColor tints markers by gesture family.
func markerColor(g gesture.Gesture) (r, gr, b, a float32) {
	switch g {
	case gesture.GestureTap, gesture.GestureDoubleTap, gesture.GestureLeftClick, gesture.GestureDoubleClick:
		return 0.3, 0.7, 1, 1
	case gesture.GesturePress, gesture.GestureRightClick, gesture.GestureMiddleClick:
		return 1, 0.6, 0.2, 1
	case gesture.GestureSwipe:
		return 0.4, 1, 0.4, 1
	}
	return 0.8, 0.8, 0.8, 1
}
