package ebitenhost

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gesture"
)

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	Target  gesture.Target // defaults to "game" when the engine has no target
	Overlay bool           // show the debug panel
	Markers bool           // show fading gesture markers
	// Background fills the screen each frame. The zero value leaves the
	// screen as ebiten cleared it.
	Background color.Color
}

// Host is an ebiten.Game that feeds an engine from the window's input and
// optionally draws the debug panel and gesture markers.
type Host struct {
	Engine  *gesture.Engine
	Source  *Source
	Overlay *Overlay
	Markers *Markers

	// OnUpdate runs after input has been forwarded each tick.
	OnUpdate func() error
	// OnDraw runs before the panel and markers are drawn.
	OnDraw func(screen *ebiten.Image)

	width, height int
	background    color.Color
}

// NewHost binds e to a full-window source. If e has no target it is bound
// to cfg.Target, or "game".
func NewHost(e *gesture.Engine, cfg RunConfig) *Host {
	h := &Host{
		Engine:     e,
		Source:     NewSource(image.Rectangle{}),
		width:      cfg.Width,
		height:     cfg.Height,
		background: cfg.Background,
	}
	if cfg.Overlay {
		h.Overlay = NewOverlay(e)
	}
	if cfg.Markers {
		h.Markers = NewMarkers(e)
	}
	e.SetListener(h.Source)
	if e.Target() == gesture.NoTarget {
		target := cfg.Target
		if target == gesture.NoTarget {
			target = "game"
		}
		e.SetTarget(target)
	}
	return h
}

// Update forwards this tick's input and advances the markers.
func (h *Host) Update() error {
	h.Source.Update()
	if h.Markers != nil {
		h.Markers.Update(tickSeconds())
	}
	if h.OnUpdate != nil {
		return h.OnUpdate()
	}
	return nil
}

// Draw draws the user content, then the markers and the panel on top.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.background != nil {
		screen.Fill(h.background)
	}
	if h.OnDraw != nil {
		h.OnDraw(screen)
	}
	if h.Markers != nil {
		h.Markers.Draw(screen)
	}
	if h.Overlay != nil {
		h.Overlay.Draw(screen, float64(tickSeconds()))
	}
}

// Layout returns the configured size, or the outside size when none was
// given.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.width > 0 && h.height > 0 {
		return h.width, h.height
	}
	return outsideWidth, outsideHeight
}

// Close releases the engine subscriptions and detaches the source.
func (h *Host) Close() {
	if h.Overlay != nil {
		h.Overlay.Close()
	}
	if h.Markers != nil {
		h.Markers.Close()
	}
	h.Engine.SetListener(nil)
}

// Run opens a window and runs e against it until the window closes.
func Run(e *gesture.Engine, cfg RunConfig) error {
	h := NewHost(e, cfg)
	defer h.Close()
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	return ebiten.RunGame(h)
}

func tickSeconds() float32 {
	return float32(1.0 / float64(ebiten.TPS()))
}
