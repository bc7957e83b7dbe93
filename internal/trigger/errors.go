package trigger

import "errors"

// ErrNilHost is returned by New when no host element is supplied.
var ErrNilHost = errors.New("trigger: nil host element")
