// Package gesture turns raw pointer, touch, wheel and key events into
// device-independent gestures.
//
// An [Engine] is bound to a [Target] and fed [RawEvent] values
// ([PointerEvent], [WheelEvent], [KeyEvent]). It recognizes taps, double
// taps, presses, swipes with a compass [Direction], drags, and two-finger
// pan, pinch and rotate on touch devices; clicks, double clicks, button
// drags and scroll wheel steps on mice; and key presses on keyboards.
//
//	e := gesture.NewEngine()
//	e.SetTarget("canvas")
//	e.OnGesture(func(ev gesture.GestureEvent) {
//		if ev.Gesture == gesture.GestureSwipe {
//			fmt.Println("swipe", ev.Direction)
//		}
//	})
//	e.Handle(gesture.PointerEvent{Target: "canvas", PointerType: gesture.PointerTouch, ...})
//
// # Notifications
//
// Two channels are available. [Engine.OnInput] receives an [InputEvent] for
// every admitted raw event and every cancellation. [Engine.OnGesture]
// receives a [GestureEvent] for recognized gestures only. Continuous
// gestures report Began, Moved and Ended; discrete ones report Completed.
// Every Began is eventually followed by Ended or Cancelled.
//
// # Cancellation
//
// Changing the target ([Engine.SetTarget]), losing focus ([Engine.Blur]),
// disabling the engine ([Engine.SetEnabled]) or switching between touch and
// mouse-and-keyboard input cancels everything in flight. Cancelled
// notifications are delivered before the call returns.
//
// # Timing
//
// The engine has no timers. Press and double-tap windows are compared
// against event timestamps when the next event arrives. A remembered tap
// does not expire on its own; the next tap simply fails the interval check.
//
// # Hosts
//
// Subpackages adapt real input sources: ebitenhost polls [Ebitengine],
// wsbridge accepts browser pointer events over a WebSocket, and ecs
// republishes gestures as [Donburi] events.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package gesture
