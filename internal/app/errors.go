package app

import "errors"

// ErrClosed is returned when attaching to an app that has been closed.
var ErrClosed = errors.New("app is closed")
