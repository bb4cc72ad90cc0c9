package gesture

import "math"

// Vec2 is a 2D vector used for positions, deltas, and midpoints throughout
// the API. Positions use screen convention: origin top-left, Y increasing
// downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Dist returns the distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// angleFromUp returns the signed angle in radians between screen "up"
// (0, -1) and v. Clockwise on screen is positive; the result is in (-π, π].
func angleFromUp(v Vec2) float64 {
	return math.Atan2(v.X, -v.Y)
}

// wrapAngle normalizes a radian angle into (-π, π].
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// Target identifies the logical surface an Engine is scoped to. The zero
// value means "no target"; an engine without a target ignores all input.
type Target string

// NoTarget is the unset target.
const NoTarget Target = ""

// InputState describes why a notification fired. It is a phase, not a
// stored entity.
type InputState uint8

const (
	StateCancelled     InputState = iota // in-flight action or gesture was aborted
	StateIdle                            // nothing in progress
	StateBegan                           // first notification of a continuous gesture
	StateMoved                           // continuous gesture updated
	StateEnded                           // continuous gesture finished normally
	StateDeviceChanged                   // active device family switched
	StateCompleted                       // discrete gesture recognized
)

// DeviceFamily is the coarse input source category.
type DeviceFamily uint8

const (
	DeviceUnknown          DeviceFamily = iota // no device seen yet
	DeviceTouch                                // touchscreen or pen
	DeviceMouseAndKeyboard                     // mouse, wheel, keyboard
)

// Direction is an 8-way compass direction in screen space. North is up.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionN
	DirectionNE
	DirectionE
	DirectionSE
	DirectionS
	DirectionSW
	DirectionW
	DirectionNW
)

// compassOctants maps round(angle / 45°) in [-4, 4] to a direction.
var compassOctants = [9]Direction{
	DirectionS,  // -4
	DirectionSW, // -3
	DirectionW,  // -2
	DirectionNW, // -1
	DirectionN,  // 0
	DirectionNE, // 1
	DirectionE,  // 2
	DirectionSE, // 3
	DirectionS,  // 4
}

// DirectionOf snaps the travel from start to end onto the nearest compass
// octant. Zero travel yields DirectionNone.
func DirectionOf(start, end Vec2) Direction {
	d := end.Sub(start)
	if d.X == 0 && d.Y == 0 {
		return DirectionNone
	}
	octant := int(math.Round(angleFromUp(d) / (math.Pi / 4)))
	return compassOctants[octant+4]
}

// Action identifies an input mechanism that is currently engaged.
type Action uint8

const (
	ActionIdle        Action = iota // nothing engaged; never stored in a set
	ActionTouchMove                 // a touch sequence has moved
	ActionTouchHold                 // a finger is down
	ActionMouseMove                 // pointer hover move (transient, never held)
	ActionMouseLeft                 // left button held
	ActionMouseRight                // right button held
	ActionMouseMiddle               // middle button held
	ActionKey                       // at least one key held
	actionCount
)

// ActionSet is a finite set of Actions. The zero value is the idle set.
type ActionSet uint16

// Insert adds a to the set and reports whether it was newly added.
// ActionIdle is never stored.
func (s *ActionSet) Insert(a Action) bool {
	if a == ActionIdle || a >= actionCount || s.Contains(a) {
		return false
	}
	*s |= 1 << a
	return true
}

// Remove deletes a from the set and reports whether it was present.
func (s *ActionSet) Remove(a Action) bool {
	if !s.Contains(a) {
		return false
	}
	*s &^= 1 << a
	return true
}

// Contains reports whether a is in the set.
func (s ActionSet) Contains(a Action) bool {
	if a == ActionIdle || a >= actionCount {
		return false
	}
	return s&(1<<a) != 0
}

// Empty reports whether the set is idle.
func (s ActionSet) Empty() bool { return s == 0 }

// Slice returns the members in declaration order.
func (s ActionSet) Slice() []Action {
	var out []Action
	for a := ActionIdle + 1; a < actionCount; a++ {
		if s.Contains(a) {
			out = append(out, a)
		}
	}
	return out
}

// Gesture identifies a semantic gesture.
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureTap
	GestureDoubleTap
	GesturePress
	GestureSwipe
	GesturePan
	GestureDrag
	GesturePinch
	GestureRotate
	GestureLeftDrag
	GestureRightDrag
	GestureLeftClick
	GestureRightClick
	GestureMiddleClick
	GestureDoubleClick
	GestureScrollwheel
	GestureScrolldrag
	GestureKeyPress
	gestureCount
)

// GestureSet is a finite set of Gestures. Members are independent; Pan,
// Pinch and Rotate may be present together during a two-finger sequence.
type GestureSet uint32

// Insert adds g to the set and reports whether it was newly added.
func (s *GestureSet) Insert(g Gesture) bool {
	if g == GestureNone || g >= gestureCount || s.Contains(g) {
		return false
	}
	*s |= 1 << g
	return true
}

// Remove deletes g from the set and reports whether it was present.
func (s *GestureSet) Remove(g Gesture) bool {
	if !s.Contains(g) {
		return false
	}
	*s &^= 1 << g
	return true
}

// Contains reports whether g is in the set.
func (s GestureSet) Contains(g Gesture) bool {
	if g == GestureNone || g >= gestureCount {
		return false
	}
	return s&(1<<g) != 0
}

// Empty reports whether no gesture is asserted.
func (s GestureSet) Empty() bool { return s == 0 }

// Slice returns the members in declaration order.
func (s GestureSet) Slice() []Gesture {
	var out []Gesture
	for g := GestureNone + 1; g < gestureCount; g++ {
		if s.Contains(g) {
			out = append(out, g)
		}
	}
	return out
}

// MouseButton identifies a mouse button on a pointer event.
type MouseButton uint8

const (
	MouseButtonNone   MouseButton = iota // plain move
	MouseButtonLeft                      // primary button
	MouseButtonMiddle                    // wheel button
	MouseButtonRight                     // secondary button
	buttonCount
)

// buttonAction maps a mouse button to the action it holds while pressed.
func buttonAction(b MouseButton) Action {
	switch b {
	case MouseButtonLeft:
		return ActionMouseLeft
	case MouseButtonMiddle:
		return ActionMouseMiddle
	case MouseButtonRight:
		return ActionMouseRight
	default:
		return ActionIdle
	}
}

// buttonDrag maps a mouse button to its drag gesture.
func buttonDrag(b MouseButton) Gesture {
	switch b {
	case MouseButtonLeft:
		return GestureLeftDrag
	case MouseButtonMiddle:
		return GestureScrolldrag
	case MouseButtonRight:
		return GestureRightDrag
	default:
		return GestureNone
	}
}
