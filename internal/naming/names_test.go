package naming

import (
	"testing"
)

func TestBaseNameRoundTrip(t *testing.T) {
	c := DefaultConvention()

	tests := []struct {
		final string
		code  int
		base  string
	}{
		{"灯1 9 3", 3, "灯1"},
		{"Kitchen 9 0", 0, "Kitchen"},
		{"Kitchen 9 0", 1, "Kitchen 9 0"},
		{"Hall", 3, "Hall"},
	}

	for _, tt := range tests {
		if got := c.BaseName(tt.final, tt.code); got != tt.base {
			t.Errorf("BaseName(%q, %d) = %q, want %q", tt.final, tt.code, got, tt.base)
		}
	}

	if got := c.ExpandBaseName("Kitchen", 5); got != "Kitchen 9 5" {
		t.Errorf("ExpandBaseName() = %q", got)
	}
	if got := c.GeneratedName(ObjectGroup, 12, 4); got != "组12 9 4" {
		t.Errorf("GeneratedName() = %q", got)
	}
}

func TestMergeOverrides(t *testing.T) {
	base := map[string]string{"1/1/1": "a", "1/1/2": "b"}
	overrides := map[string]string{"1/1/1": "  x  ", "1/1/2": "   ", "9/9/9": "z"}

	got := MergeOverrides(base, overrides)

	want := map[string]string{"1/1/1": "x", "1/1/2": "b", "9/9/9": "z"}
	if len(got) != len(want) {
		t.Fatalf("MergeOverrides() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("MergeOverrides()[%q] = %q, want %q", k, got[k], v)
		}
	}
	if base["1/1/1"] != "a" {
		t.Error("MergeOverrides() modified its base map")
	}
}

func TestApplyOverrides(t *testing.T) {
	c := DefaultConvention()
	res := c.Resolve(sources(t, "1/1/1", "1/4/1"))
	res.Entries[1].FinalName = "stale"

	got := ApplyOverrides(res.Entries, map[string]string{"1/1/1": " Desk "})

	if got[0].FinalName != "Desk" {
		t.Errorf("FinalName = %q, want override", got[0].FinalName)
	}
	if got[1].FinalName != got[1].GeneratedName {
		t.Errorf("FinalName = %q, want generated name", got[1].FinalName)
	}
	if res.Entries[0].FinalName != res.Entries[0].GeneratedName {
		t.Error("ApplyOverrides() modified its input")
	}

	names := NameMap(got)
	if names["1/1/1"] != "Desk" || names["1/4/1"] != "灯1 9 2" {
		t.Errorf("NameMap() = %v", names)
	}
}
