package processor

import "errors"

var (
	ErrSourceOpen = errors.New("source image unreadable")
	ErrWrite      = errors.New("failed to write output image")
)
