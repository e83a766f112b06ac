package etsimport

// GroupAddress is one GroupAddress element read from an ETS export.
type GroupAddress struct {
	// Address exactly as written in the document (normally "main/middle/sub").
	Address string `json:"address"`

	// Name from ETS.
	Name string `json:"name"`

	// DPT in "X.YYY" format (may be empty if not specified in ETS).
	DPT string `json:"dpt,omitempty"`

	// Location is the GroupRange path, e.g. "Lighting > Ground floor".
	Location string `json:"location,omitempty"`
}
