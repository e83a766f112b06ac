package config

import (
	"fmt"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
	"github.com/nerrad567/knx-ga-studio/internal/naming"
)

// Build converts the configured convention into a validated
// naming.Convention.
//
// Returns:
//   - naming.Convention: ready for resolution
//   - error: if the function table or the convention is invalid
func (c ConventionConfig) Build() (naming.Convention, error) {
	table, err := knx.NewFunctionTable(c.Functions)
	if err != nil {
		return naming.Convention{}, fmt.Errorf("functions: %w", err)
	}

	conv := naming.Convention{
		DeviceID:          c.DeviceID,
		BlockSize:         c.BlockSize,
		LightsPerModule:   c.LightsPerModule,
		GroupsPerModule:   c.GroupsPerModule,
		MaxModulesPerMain: c.MaxModulesPerMain,
		MinMain:           c.MinMain,
		MaxMain:           c.MaxMain,
		LightLabel:        c.LightLabel,
		GroupLabel:        c.GroupLabel,
		Functions:         table,
	}
	if err := conv.Validate(); err != nil {
		return naming.Convention{}, err
	}

	return conv, nil
}
