package render

import "errors"

// Sentinel errors for rendering.
var (
	ErrPlot   = errors.New("build plot failed")
	ErrEncode = errors.New("encode image failed")
	ErrEmpty  = errors.New("no frames to encode")
)
