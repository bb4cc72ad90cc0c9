package gesture

import "strings"

var inputStateNames = [...]string{
	StateCancelled:     "cancelled",
	StateIdle:          "idle",
	StateBegan:         "began",
	StateMoved:         "moved",
	StateEnded:         "ended",
	StateDeviceChanged: "device-changed",
	StateCompleted:     "completed",
}

func (s InputState) String() string {
	if int(s) < len(inputStateNames) {
		return inputStateNames[s]
	}
	return "unknown"
}

var deviceNames = [...]string{
	DeviceUnknown:          "unknown",
	DeviceTouch:            "touch",
	DeviceMouseAndKeyboard: "mouse-keyboard",
}

func (d DeviceFamily) String() string {
	if int(d) < len(deviceNames) {
		return deviceNames[d]
	}
	return "unknown"
}

var directionNames = [...]string{
	DirectionNone: "none",
	DirectionN:    "N",
	DirectionNE:   "NE",
	DirectionE:    "E",
	DirectionSE:   "SE",
	DirectionS:    "S",
	DirectionSW:   "SW",
	DirectionW:    "W",
	DirectionNW:   "NW",
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "none"
}

var actionNames = [...]string{
	ActionIdle:        "idle",
	ActionTouchMove:   "touch-move",
	ActionTouchHold:   "touch-hold",
	ActionMouseMove:   "mouse-move",
	ActionMouseLeft:   "mouse-left",
	ActionMouseRight:  "mouse-right",
	ActionMouseMiddle: "mouse-middle",
	ActionKey:         "key",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// String lists the members joined by "|", or "idle".
func (s ActionSet) String() string {
	members := s.Slice()
	if len(members) == 0 {
		return "idle"
	}
	names := make([]string, len(members))
	for i, a := range members {
		names[i] = a.String()
	}
	return strings.Join(names, "|")
}

var gestureNames = [...]string{
	GestureNone:        "none",
	GestureTap:         "tap",
	GestureDoubleTap:   "double-tap",
	GesturePress:       "press",
	GestureSwipe:       "swipe",
	GesturePan:         "pan",
	GestureDrag:        "drag",
	GesturePinch:       "pinch",
	GestureRotate:      "rotate",
	GestureLeftDrag:    "left-drag",
	GestureRightDrag:   "right-drag",
	GestureLeftClick:   "left-click",
	GestureRightClick:  "right-click",
	GestureMiddleClick: "middle-click",
	GestureDoubleClick: "double-click",
	GestureScrollwheel: "scrollwheel",
	GestureScrolldrag:  "scrolldrag",
	GestureKeyPress:    "key-press",
}

func (g Gesture) String() string {
	if int(g) < len(gestureNames) {
		return gestureNames[g]
	}
	return "unknown"
}

// ParseGesture returns the gesture whose String form is name.
func ParseGesture(name string) (Gesture, bool) {
	for i, n := range gestureNames {
		if n == name {
			return Gesture(i), true
		}
	}
	return GestureNone, false
}

// String lists the members joined by "|", or "none".
func (s GestureSet) String() string {
	members := s.Slice()
	if len(members) == 0 {
		return "none"
	}
	names := make([]string, len(members))
	for i, g := range members {
		names[i] = g.String()
	}
	return strings.Join(names, "|")
}

var buttonNames = [...]string{
	MouseButtonNone:   "none",
	MouseButtonLeft:   "left",
	MouseButtonMiddle: "middle",
	MouseButtonRight:  "right",
}

func (b MouseButton) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "unknown"
}
