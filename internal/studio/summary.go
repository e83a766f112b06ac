package studio

import (
	"github.com/nerrad567/knx-ga-studio/internal/naming"
)

// Summary describes a parsed batch.
type Summary struct {
	MainCount      int `json:"main_count"`
	ModuleCount    int `json:"module_count"`
	LightCount     int `json:"light_count"`
	GroupCount     int `json:"group_count"`
	ConvertedCount int `json:"converted_count"`

	// AddressCount is the number of group addresses read from the document.
	AddressCount int `json:"address_count"`

	// MalformedCount counts addresses that are not main/middle/sub.
	MalformedCount int `json:"malformed_count"`

	// IneligibleCount counts well-formed addresses the convention skips.
	IneligibleCount int `json:"ineligible_count"`

	// Object number ranges; zero when the batch has no object of that type.
	LightMin int `json:"light_min,omitempty"`
	LightMax int `json:"light_max,omitempty"`
	GroupMin int `json:"group_min,omitempty"`
	GroupMax int `json:"group_max,omitempty"`

	Mains []naming.MainLayout `json:"mains"`
}

// Skipped is the number of addresses that produced no entry.
func (s Summary) Skipped() int {
	return s.MalformedCount + s.IneligibleCount
}

// summarise counts the distinct objects and modules of a resolution.
func summarise(res *naming.Resolution, read, malformed int) Summary {
	s := Summary{
		MainCount:       len(res.Layouts),
		ConvertedCount:  len(res.Entries),
		AddressCount:    read,
		MalformedCount:  malformed,
		IneligibleCount: res.Ineligible,
		Mains:           naming.SortedLayouts(res.Layouts),
	}
	for _, l := range s.Mains {
		s.ModuleCount += l.Modules
	}

	lights := make(map[int]struct{})
	groups := make(map[int]struct{})
	for _, e := range res.Entries {
		switch e.ObjectType {
		case naming.ObjectLight:
			lights[e.ObjectNo] = struct{}{}
			s.LightMin, s.LightMax = extend(s.LightMin, s.LightMax, e.ObjectNo)
		case naming.ObjectGroup:
			groups[e.ObjectNo] = struct{}{}
			s.GroupMin, s.GroupMax = extend(s.GroupMin, s.GroupMax, e.ObjectNo)
		}
	}
	s.LightCount = len(lights)
	s.GroupCount = len(groups)

	return s
}

// extend widens [lo, hi] to include n. Object numbers start at 1, so a
// zero lo means the range is still empty.
func extend(lo, hi, n int) (int, int) {
	if lo == 0 || n < lo {
		lo = n
	}
	if n > hi {
		hi = n
	}
	return lo, hi
}
