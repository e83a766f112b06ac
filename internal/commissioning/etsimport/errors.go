package etsimport

import "errors"

// Sentinel errors for ETS document operations.
var (
	// ErrMalformedDocument indicates the input cannot be parsed as XML.
	ErrMalformedDocument = errors.New("malformed ETS document")

	// ErrUnsupportedFormat indicates a recognised but unsupported input,
	// such as a .knxproj archive.
	ErrUnsupportedFormat = errors.New("unsupported ETS format")

	// ErrNoGroupAddresses indicates no group addresses were found.
	ErrNoGroupAddresses = errors.New("no group addresses found in document")

	// ErrFileTooLarge indicates the file exceeds the size limit.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")
)
