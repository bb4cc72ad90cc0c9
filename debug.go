package gesture

import (
	"fmt"
	"io"
	"os"
)

// SetDebugMode enables diagnostic lines for device switches, cancellations
// and recognized gestures.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// SetDebugOutput redirects debug lines. A nil writer restores stderr.
func (e *Engine) SetDebugOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	e.debugOut = w
}

// debugf writes one "[gesture]" line. Callers check e.debug first so the
// arguments are not formatted in release mode.
func (e *Engine) debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(e.debugOut, "[gesture] "+format+"\n", args...)
}
