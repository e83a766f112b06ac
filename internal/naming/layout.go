package naming

import (
	"sort"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

// MainLayout is the allocation of one main group.
//
// Offsets count the slots and modules of every main group numbered before
// this one; they do not include this main group's own contribution.
type MainLayout struct {
	Main         int `json:"main"`
	MaxSub       int `json:"max_sub"`
	Modules      int `json:"modules"`
	LightSlots   int `json:"light_slots"`
	GroupSlots   int `json:"group_slots"`
	LightOffset  int `json:"light_offset"`
	GroupOffset  int `json:"group_offset"`
	ModuleOffset int `json:"module_offset"`
}

// DiscoverExtents is the first resolver pass: it records the highest sub
// seen per main group. Callers pass only eligible addresses.
func DiscoverExtents(addrs []knx.GroupAddress) map[int]int {
	extents := make(map[int]int)
	for _, ga := range addrs {
		if prev, ok := extents[ga.Main]; !ok || ga.Sub > prev {
			extents[ga.Main] = ga.Sub
		}
	}
	return extents
}

// BuildLayouts is the second resolver pass. Main groups are allocated in
// ascending order so numbering never depends on input order.
func (c Convention) BuildLayouts(extents map[int]int) map[int]MainLayout {
	mains := make([]int, 0, len(extents))
	for main := range extents {
		mains = append(mains, main)
	}
	sort.Ints(mains)

	layouts := make(map[int]MainLayout, len(mains))
	lightOffset, groupOffset, moduleOffset := 0, 0, 0

	for _, main := range mains {
		maxSub := extents[main]
		full, rem := maxSub/c.BlockSize, maxSub%c.BlockSize

		modules := full
		if rem > 0 {
			modules++
		}
		if modules < 1 {
			modules = 1
		}

		layout := MainLayout{
			Main:         main,
			MaxSub:       maxSub,
			Modules:      modules,
			LightSlots:   full*c.LightsPerModule + min(rem, c.LightsPerModule),
			GroupSlots:   full*c.GroupsPerModule + max(0, rem-c.LightsPerModule),
			LightOffset:  lightOffset,
			GroupOffset:  groupOffset,
			ModuleOffset: moduleOffset,
		}
		layouts[main] = layout

		lightOffset += layout.LightSlots
		groupOffset += layout.GroupSlots
		moduleOffset += layout.Modules
	}

	return layouts
}

// SortedLayouts returns layouts ordered by main group.
func SortedLayouts(layouts map[int]MainLayout) []MainLayout {
	out := make([]MainLayout, 0, len(layouts))
	for _, l := range layouts {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Main < out[j].Main })
	return out
}

// Classify maps a sub address onto its object identity within a layout.
// sub must be >= 1.
func (c Convention) Classify(sub int, layout MainLayout) Identity {
	moduleInMain := (sub-1)/c.BlockSize + 1
	local := (sub-1)%c.BlockSize + 1

	id := Identity{
		ModuleInMain: moduleInMain,
		ModuleGlobal: layout.ModuleOffset + moduleInMain,
	}

	if local <= c.LightsPerModule {
		id.Type = ObjectLight
		id.ObjectNo = layout.LightOffset + (moduleInMain-1)*c.LightsPerModule + local
	} else {
		id.Type = ObjectGroup
		id.ObjectNo = layout.GroupOffset + (moduleInMain-1)*c.GroupsPerModule + (local - c.LightsPerModule)
	}

	return id
}
