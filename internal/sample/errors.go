package sample

import "errors"

// ErrWrite wraps failures writing sample files.
var ErrWrite = errors.New("write sample failed")
