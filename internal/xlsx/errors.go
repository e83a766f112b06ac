package xlsx

import "errors"

// Sentinel errors for workbook construction.
var (
	// ErrInvalidSheetName indicates a sheet name spreadsheet software rejects.
	ErrInvalidSheetName = errors.New("xlsx: invalid sheet name")

	// ErrEmptySheet indicates neither headers nor rows were supplied.
	ErrEmptySheet = errors.New("xlsx: sheet has no cells")
)
