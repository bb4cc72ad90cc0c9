package gesture

import (
	"errors"
	"time"
)

// Thresholds holds every timing and distance constant the classifiers use.
// Distances are in target-local units (pixels), durations are wall time.
type Thresholds struct {
	TapMaxDuration    time.Duration // a tap must release within this window
	TapMaxDistance    float64       // tap and press travel radius
	DoubleTapInterval time.Duration // max gap between two taps
	DoubleTapDistance float64       // max distance between two taps

	PressMinDuration  time.Duration // a press must be held at least this long
	PressMaxDuration  time.Duration // a press released after this needs HardPressPressure
	HardPressPressure float64       // pressure that keeps the press window open

	SwipeMaxDuration time.Duration // a swipe must release within this window
	SwipeMinVelocity float64       // units per second

	MoveEpsilon   float64 // minimum per-event travel for drag and pan
	PinchEpsilon  float64 // minimum scale change for pinch
	RotateEpsilon float64 // minimum rotation change for rotate, radians

	ClickMaxDistance    float64       // down→up travel for a click
	DoubleClickInterval time.Duration // max gap between two left clicks
	DoubleClickDistance float64       // max distance between two left clicks
}

// DefaultThresholds returns the stock table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		TapMaxDuration:    300 * time.Millisecond,
		TapMaxDistance:    10,
		DoubleTapInterval: 300 * time.Millisecond,
		DoubleTapDistance: 50,

		PressMinDuration:  350 * time.Millisecond,
		PressMaxDuration:  900 * time.Millisecond,
		HardPressPressure: 0.75,

		SwipeMaxDuration: 400 * time.Millisecond,
		SwipeMinVelocity: 10,

		MoveEpsilon:   1,
		PinchEpsilon:  1e-2,
		RotateEpsilon: 1e-1,

		ClickMaxDistance:    50,
		DoubleClickInterval: 300 * time.Millisecond,
		DoubleClickDistance: 50,
	}
}

// Validate reports the first nonsensical value in the table.
func (t Thresholds) Validate() error {
	switch {
	case t.TapMaxDuration <= 0:
		return errors.New("tap max duration must be > 0")
	case t.DoubleTapInterval <= 0:
		return errors.New("double-tap interval must be > 0")
	case t.PressMinDuration <= 0:
		return errors.New("press min duration must be > 0")
	case t.PressMaxDuration < t.PressMinDuration:
		return errors.New("press max duration must be >= press min duration")
	case t.SwipeMaxDuration <= 0:
		return errors.New("swipe max duration must be > 0")
	case t.DoubleClickInterval <= 0:
		return errors.New("double-click interval must be > 0")
	case t.TapMaxDistance < 0, t.DoubleTapDistance < 0, t.ClickMaxDistance < 0, t.DoubleClickDistance < 0:
		return errors.New("distances must be >= 0")
	case t.MoveEpsilon < 0, t.PinchEpsilon < 0, t.RotateEpsilon < 0:
		return errors.New("epsilons must be >= 0")
	case t.HardPressPressure < 0 || t.HardPressPressure > 1:
		return errors.New("hard press pressure must be within 0..1")
	case t.SwipeMinVelocity < 0:
		return errors.New("swipe min velocity must be >= 0")
	}
	return nil
}
