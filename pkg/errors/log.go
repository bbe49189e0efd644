package errors

import (
	"fmt"
	"os"
)

// LogHandler is an ErrorHandler that logs errors to stderr.
type LogHandler struct {
	// Verbose additionally logs KindDetached errors, which are expected
	// during teardown and suppressed by default.
	Verbose bool
}

// HandleError logs a ScrollError to stderr.
func (h *LogHandler) HandleError(err *ScrollError) {
	if err == nil {
		return
	}
	if err.Kind == KindDetached && !h.Verbose {
		return
	}
	fmt.Fprintf(os.Stderr, "[kinetic error] %s [%s]: %v\n", err.Op, err.Kind, err.Err)
}
