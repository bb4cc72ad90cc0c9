package gesture

// resolveDevice maps a raw event to the device family it belongs to.
// Events no family can classify resolve to DeviceUnknown.
func resolveDevice(ev RawEvent) DeviceFamily {
	switch ev := ev.(type) {
	case PointerEvent:
		switch ev.PointerType {
		case PointerTouch, PointerPen:
			return DeviceTouch
		case PointerMouse:
			// a press or release must name its button
			if ev.Button == MouseButtonNone && (ev.Phase == PhaseDown || ev.Phase == PhaseUp) {
				return DeviceUnknown
			}
			return DeviceMouseAndKeyboard
		}
	case WheelEvent, KeyEvent:
		return DeviceMouseAndKeyboard
	}
	return DeviceUnknown
}

// arbitrate admits ev, switching the active device family first when needed.
// A switch cancels everything the previous family left in flight and
// announces the new family before ev reaches a classifier. It reports false
// for events from unrecognized devices.
func (e *Engine) arbitrate(ev RawEvent) bool {
	family := resolveDevice(ev)
	if family == DeviceUnknown {
		return false
	}
	if family == e.device {
		return true
	}
	prev := e.device
	e.cancelAll()
	e.actions = 0
	e.device = family
	e.emitInput(InputEvent{State: StateDeviceChanged, Device: family})
	if e.debug {
		e.debugf("device %s -> %s", prev, family)
	}
	return true
}
