package measure

import "errors"

// Precondition errors, compared with errors.Is
var (
	// ErrEmptyLine is returned when querying the last anchor of an empty line
	ErrEmptyLine = errors.New("anchor line is empty")

	// ErrEmptyStack is returned when querying an empty selection stack
	ErrEmptyStack = errors.New("selection stack is empty")

	// ErrInsufficientPoints is returned by geometry queries on zero anchors
	ErrInsufficientPoints = errors.New("not enough anchor points")

	// ErrMissingCamera is returned by screen-space queries without a camera
	ErrMissingCamera = errors.New("camera is missing")

	// ErrAnchorIndex is returned when an anchor index is out of range
	ErrAnchorIndex = errors.New("anchor index out of range")

	// ErrUnknownMode is returned by ParseMode
	ErrUnknownMode = errors.New("unknown measure mode")
)
