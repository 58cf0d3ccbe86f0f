package script

import (
	"errors"
	"fmt"
)

// ErrInterpreterUnavailable means the interpreter cannot make a call right
// now (closed or mid-teardown). Fatal to the one call, never to the process
var ErrInterpreterUnavailable = errors.New("script interpreter unavailable")

// HandlerError wraps a failure raised inside a script handler. It is always
// contained at the native boundary; callers log it and carry on
type HandlerError struct {
	Err error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("script handler failed: %v", e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}
