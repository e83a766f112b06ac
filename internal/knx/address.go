package knx

import (
	"fmt"
	"strconv"
	"strings"
)

// GroupAddress represents a KNX group address in 3-level format.
//
// Format: Main/Middle/Sub
//
// Parsing accepts any non-negative integer per level. The bus limits
// (main 0-31, middle 0-7, sub 0-255) are not enforced here; naming
// conventions decide which addresses they accept.
type GroupAddress struct {
	Main   int
	Middle int
	Sub    int
}

// Group address limits per KNX specification.
const (
	MaxMain   = 31
	MaxMiddle = 7
	MaxSub    = 255

	// gaLevelCount is the number of levels in a 3-level group address.
	gaLevelCount = 3

	// gaLevelBits bounds each parsed level so it always fits in an int.
	gaLevelBits = 31
)

// ParseGroupAddress parses a 3-level group address string.
//
// Accepts formats:
//   - "1/2/3": standard 3-level format
//   - " 1 / 2 / 3 ": whitespace around each level is ignored
//
// Parameters:
//   - s: Group address string
//
// Returns:
//   - GroupAddress: Parsed address
//   - error: ErrMalformedAddress if the string does not have exactly three
//     integer levels
//
// Example:
//
//	addr, err := ParseGroupAddress("1/2/3")
//	if err != nil {
//	    return err
//	}
func ParseGroupAddress(s string) (GroupAddress, error) {
	parts := strings.Split(s, "/")
	if len(parts) != gaLevelCount {
		return GroupAddress{}, fmt.Errorf("%w: expected 3-level format (main/middle/sub), got %q", ErrMalformedAddress, s)
	}

	var levels [gaLevelCount]int
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, gaLevelBits)
		if err != nil {
			return GroupAddress{}, fmt.Errorf("%w: level %d of %q is not a non-negative integer", ErrMalformedAddress, i+1, s)
		}
		levels[i] = int(v)
	}

	return GroupAddress{
		Main:   levels[0],
		Middle: levels[1],
		Sub:    levels[2],
	}, nil
}

// String returns the group address in 3-level format.
//
// Example: "1/2/3"
func (ga GroupAddress) String() string {
	return fmt.Sprintf("%d/%d/%d", ga.Main, ga.Middle, ga.Sub)
}

// Compare orders addresses by main, then middle, then sub.
// It returns -1, 0 or +1 like cmp.Compare.
func (ga GroupAddress) Compare(other GroupAddress) int {
	switch {
	case ga.Main != other.Main:
		return sign(ga.Main - other.Main)
	case ga.Middle != other.Middle:
		return sign(ga.Middle - other.Middle)
	default:
		return sign(ga.Sub - other.Sub)
	}
}

// IsValid returns true if the group address values are within bus limits.
func (ga GroupAddress) IsValid() bool {
	return ga.Main >= 0 && ga.Main <= MaxMain &&
		ga.Middle >= 0 && ga.Middle <= MaxMiddle &&
		ga.Sub >= 0 && ga.Sub <= MaxSub
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
