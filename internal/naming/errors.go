package naming

import "errors"

// Sentinel errors for naming operations.
var (
	// ErrInvalidConvention indicates a convention whose sizes or labels
	// cannot produce a consistent numbering.
	ErrInvalidConvention = errors.New("naming: invalid convention")

	// ErrIneligibleAddress marks an address the convention does not rename.
	// Resolve filters these silently; the error only carries the reason.
	ErrIneligibleAddress = errors.New("naming: address not eligible for renaming")

	// ErrInvalidTemplate indicates a template row (or whole template) that
	// cannot be applied.
	ErrInvalidTemplate = errors.New("naming: invalid template")
)
