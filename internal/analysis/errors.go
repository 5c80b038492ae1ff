package analysis

import "errors"

var (
	// ErrInput is returned when an image is missing, cannot be decoded, or has no pixels.
	ErrInput = errors.New("unreadable or empty image")

	// ErrSegmentation is returned when thresholding leaves no foreground pixels.
	ErrSegmentation = errors.New("no diamond region detected")

	// ErrRender is returned when the diagnostic figure could not be produced or written.
	ErrRender = errors.New("visualization could not be written")

	// ErrTimeout is returned by callers that bound the time spent on one image.
	ErrTimeout = errors.New("analysis timed out")
)
