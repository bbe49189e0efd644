package errors

import (
	"sync"
	"time"
)

var (
	// defaultHandler is the global error handler. It defaults to
	// LogHandler with Verbose=false.
	defaultHandler ErrorHandler = &LogHandler{}

	handlerMu sync.RWMutex
)

// SetHandler configures the global error handler and returns the previous
// one. Pass nil to restore the default LogHandler.
func SetHandler(h ErrorHandler) ErrorHandler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	prev := defaultHandler
	if h == nil {
		defaultHandler = &LogHandler{}
	} else {
		defaultHandler = h
	}
	return prev
}

func getHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return defaultHandler
}

// Report sends an error to the global handler. If err.Timestamp is zero,
// it is set to the current time.
func Report(err *ScrollError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := getHandler(); h != nil {
		h.HandleError(err)
	}
}
