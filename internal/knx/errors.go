package knx

import "errors"

// Domain errors for the knx package.
var (
	// ErrMalformedAddress is returned when a group address string
	// cannot be parsed into three integer levels.
	ErrMalformedAddress = errors.New("knx: malformed group address")

	// ErrInvalidFunctionTable is returned when a function table contains
	// duplicate middle keys or invalid codes.
	ErrInvalidFunctionTable = errors.New("knx: invalid function table")
)
