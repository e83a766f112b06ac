package naming

import (
	"testing"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

func TestBuildLayoutsSingleModule(t *testing.T) {
	c := DefaultConvention()
	layouts := c.BuildLayouts(map[int]int{1: 80})

	got := layouts[1]
	want := MainLayout{Main: 1, MaxSub: 80, Modules: 1, LightSlots: 64, GroupSlots: 16}
	if got != want {
		t.Errorf("BuildLayouts() = %+v, want %+v", got, want)
	}
}

func TestBuildLayoutsPartialModules(t *testing.T) {
	c := DefaultConvention()

	tests := []struct {
		maxSub  int
		modules int
		lights  int
		groups  int
	}{
		{1, 1, 1, 0},
		{10, 1, 10, 0},
		{64, 1, 64, 0},
		{65, 1, 64, 1},
		{80, 1, 64, 16},
		{81, 2, 65, 16},
		{150, 2, 128, 22},
		{160, 2, 128, 32},
	}

	for _, tt := range tests {
		l := c.BuildLayouts(map[int]int{0: tt.maxSub})[0]
		if l.Modules != tt.modules || l.LightSlots != tt.lights || l.GroupSlots != tt.groups {
			t.Errorf("maxSub %d: modules/lights/groups = %d/%d/%d, want %d/%d/%d",
				tt.maxSub, l.Modules, l.LightSlots, l.GroupSlots, tt.modules, tt.lights, tt.groups)
		}
	}
}

func TestBuildLayoutsOffsets(t *testing.T) {
	c := DefaultConvention()
	layouts := c.BuildLayouts(map[int]int{5: 10, 1: 80, 3: 100})

	tests := []struct {
		main                          int
		lightOff, groupOff, moduleOff int
	}{
		{1, 0, 0, 0},
		{3, 64, 16, 1},
		{5, 64 + 84, 16 + 16, 3},
	}

	for _, tt := range tests {
		l, ok := layouts[tt.main]
		if !ok {
			t.Fatalf("no layout for main %d", tt.main)
		}
		if l.LightOffset != tt.lightOff || l.GroupOffset != tt.groupOff || l.ModuleOffset != tt.moduleOff {
			t.Errorf("main %d offsets = %d/%d/%d, want %d/%d/%d", tt.main,
				l.LightOffset, l.GroupOffset, l.ModuleOffset, tt.lightOff, tt.groupOff, tt.moduleOff)
		}
	}

	sorted := SortedLayouts(layouts)
	if len(sorted) != 3 || sorted[0].Main != 1 || sorted[2].Main != 5 {
		t.Errorf("SortedLayouts() = %+v", sorted)
	}
}

func TestDiscoverExtents(t *testing.T) {
	got := DiscoverExtents([]knx.GroupAddress{
		{Main: 1, Middle: 1, Sub: 3},
		{Main: 1, Middle: 2, Sub: 70},
		{Main: 2, Middle: 1, Sub: 5},
		{Main: 1, Middle: 4, Sub: 12},
	})

	if len(got) != 2 || got[1] != 70 || got[2] != 5 {
		t.Errorf("DiscoverExtents() = %v", got)
	}
}

func TestClassify(t *testing.T) {
	c := DefaultConvention()
	layout := MainLayout{Main: 2, MaxSub: 160, Modules: 2, LightOffset: 100, GroupOffset: 20, ModuleOffset: 3}

	tests := []struct {
		sub  int
		want Identity
	}{
		{1, Identity{ModuleInMain: 1, ModuleGlobal: 4, Type: ObjectLight, ObjectNo: 101}},
		{64, Identity{ModuleInMain: 1, ModuleGlobal: 4, Type: ObjectLight, ObjectNo: 164}},
		{65, Identity{ModuleInMain: 1, ModuleGlobal: 4, Type: ObjectGroup, ObjectNo: 21}},
		{80, Identity{ModuleInMain: 1, ModuleGlobal: 4, Type: ObjectGroup, ObjectNo: 36}},
		{81, Identity{ModuleInMain: 2, ModuleGlobal: 5, Type: ObjectLight, ObjectNo: 165}},
		{160, Identity{ModuleInMain: 2, ModuleGlobal: 5, Type: ObjectGroup, ObjectNo: 52}},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.sub, layout); got != tt.want {
			t.Errorf("Classify(%d) = %+v, want %+v", tt.sub, got, tt.want)
		}
	}
}
