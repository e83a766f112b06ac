package naming

import (
	"fmt"
	"strings"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

// Default convention values (MaiLian DALI tunable-white gateway, device #9).
const (
	DefaultDeviceID          = 9
	DefaultBlockSize         = 80
	DefaultLightsPerModule   = 64
	DefaultGroupsPerModule   = 16
	DefaultMaxModulesPerMain = 2
	DefaultMinMain           = 0
	DefaultMaxMain           = knx.MaxMain
	DefaultLightLabel        = "灯"
	DefaultGroupLabel        = "组"
)

// Convention describes how a gateway maps group addresses onto objects.
//
// Each main group is split into modules of BlockSize consecutive sub
// addresses. The first LightsPerModule positions of a module address
// individual lights, the remaining GroupsPerModule positions address
// light groups. The middle group selects the function via Functions.
//
// A Convention is a value; it holds no mutable state and may be shared
// between goroutines.
type Convention struct {
	DeviceID        int
	BlockSize       int
	LightsPerModule int
	GroupsPerModule int

	// MaxModulesPerMain bounds eligible sub addresses to
	// BlockSize*MaxModulesPerMain. Zero disables the bound.
	MaxModulesPerMain int

	MinMain int
	MaxMain int

	LightLabel string
	GroupLabel string

	Functions *knx.FunctionTable
}

// DefaultConvention returns the shipped convention.
func DefaultConvention() Convention {
	return Convention{
		DeviceID:          DefaultDeviceID,
		BlockSize:         DefaultBlockSize,
		LightsPerModule:   DefaultLightsPerModule,
		GroupsPerModule:   DefaultGroupsPerModule,
		MaxModulesPerMain: DefaultMaxModulesPerMain,
		MinMain:           DefaultMinMain,
		MaxMain:           DefaultMaxMain,
		LightLabel:        DefaultLightLabel,
		GroupLabel:        DefaultGroupLabel,
		Functions:         knx.DefaultFunctionTable(),
	}
}

// Validate checks the convention for inconsistent sizes and labels.
//
// Returns:
//   - error: ErrInvalidConvention listing every problem, or nil if valid
func (c Convention) Validate() error {
	var errs []string

	if c.DeviceID < 0 {
		errs = append(errs, "device id must not be negative")
	}
	if c.BlockSize < 1 {
		errs = append(errs, "block size must be positive")
	}
	if c.LightsPerModule < 0 || c.GroupsPerModule < 0 {
		errs = append(errs, "lights and groups per module must not be negative")
	}
	if c.LightsPerModule+c.GroupsPerModule != c.BlockSize {
		errs = append(errs, fmt.Sprintf("lights (%d) + groups (%d) per module must equal block size (%d)",
			c.LightsPerModule, c.GroupsPerModule, c.BlockSize))
	}
	if c.MaxModulesPerMain < 0 {
		errs = append(errs, "max modules per main must not be negative")
	}
	if c.MinMain < 0 || c.MinMain > c.MaxMain {
		errs = append(errs, fmt.Sprintf("main range %d..%d is invalid", c.MinMain, c.MaxMain))
	}
	if strings.TrimSpace(c.LightLabel) == "" || strings.TrimSpace(c.GroupLabel) == "" {
		errs = append(errs, "object labels must not be empty")
	} else if c.LightLabel == c.GroupLabel {
		errs = append(errs, "light and group labels must differ")
	}
	if c.Functions.Len() == 0 {
		errs = append(errs, "function table must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConvention, strings.Join(errs, "; "))
	}
	return nil
}

// Label returns the display label of an object type.
func (c Convention) Label(t ObjectType) string {
	switch t {
	case ObjectLight:
		return c.LightLabel
	case ObjectGroup:
		return c.GroupLabel
	default:
		return t.String()
	}
}

// ParseLabel maps a display label (or "light"/"group") back to its type.
func (c Convention) ParseLabel(s string) (ObjectType, bool) {
	s = strings.TrimSpace(s)
	switch {
	case s == c.LightLabel || strings.EqualFold(s, ObjectLight.String()):
		return ObjectLight, true
	case s == c.GroupLabel || strings.EqualFold(s, ObjectGroup.String()):
		return ObjectGroup, true
	default:
		return 0, false
	}
}

// Eligible reports whether an address is renamed under this convention.
//
// Returns:
//   - knx.Function: the function bound to the address's middle group
//   - error: ErrIneligibleAddress wrapped with the reason, or nil
func (c Convention) Eligible(ga knx.GroupAddress) (knx.Function, error) {
	fn, ok := c.Functions.Lookup(ga.Middle)
	if !ok {
		return knx.Function{}, fmt.Errorf("%w: middle %d has no function", ErrIneligibleAddress, ga.Middle)
	}
	if ga.Main < c.MinMain || ga.Main > c.MaxMain {
		return knx.Function{}, fmt.Errorf("%w: main %d outside %d..%d", ErrIneligibleAddress, ga.Main, c.MinMain, c.MaxMain)
	}
	if ga.Sub < 1 {
		return knx.Function{}, fmt.Errorf("%w: sub must be >= 1", ErrIneligibleAddress)
	}
	if limit := c.subLimit(); limit > 0 && ga.Sub > limit {
		return knx.Function{}, fmt.Errorf("%w: sub %d exceeds %d", ErrIneligibleAddress, ga.Sub, limit)
	}
	return fn, nil
}

// subLimit returns the highest eligible sub, or 0 when unbounded.
func (c Convention) subLimit() int {
	if c.MaxModulesPerMain == 0 {
		return 0
	}
	return c.BlockSize * c.MaxModulesPerMain
}
