package service

import "errors"

// Sentinel kinds for pipeline failures, one per stage.
var (
	ErrLoad      = errors.New("load input failed")
	ErrTransform = errors.New("transform input failed")
	ErrScale     = errors.New("scale table failed")
)
