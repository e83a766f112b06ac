package knx

import (
	"errors"
	"testing"
)

func TestNormalizeFunction(t *testing.T) {
	tests := []struct {
		name      string
		wantCanon string
		wantKnown bool
	}{
		{"switch", "switch", true},
		{"on_off", "switch", true},
		{"DIM", "brightness", true},
		{"ct", "color_temperature", true}, //nolint:misspell // KNX standard term
		{"dim_status", "brightness_status", true},
		{"blind", "blind", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canon, known := NormalizeFunction(tt.name)
			if canon != tt.wantCanon || known != tt.wantKnown {
				t.Errorf("NormalizeFunction(%q) = (%q, %v), want (%q, %v)",
					tt.name, canon, known, tt.wantCanon, tt.wantKnown)
			}
		})
	}
}

func TestDefaultFunctionTable(t *testing.T) {
	table := DefaultFunctionTable()

	if table.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", table.Len())
	}

	tests := []struct {
		middle   int
		wantName string
		wantCode int
		wantDPT  string
	}{
		{1, "开关写", 3, "1.001"},
		{2, "亮度写", 1, "5.001"},
		{3, "色温写", 5, "7.600"},
		{4, "开关读", 2, "1.001"},
		{5, "亮度读", 0, "5.001"},
		{6, "色温读", 4, "7.600"},
	}

	for _, tt := range tests {
		fn, ok := table.Lookup(tt.middle)
		if !ok {
			t.Errorf("Lookup(%d) not found", tt.middle)
			continue
		}
		if fn.Name != tt.wantName || fn.Code != tt.wantCode || fn.DPT != tt.wantDPT {
			t.Errorf("Lookup(%d) = %+v, want name=%q code=%d dpt=%q",
				tt.middle, fn, tt.wantName, tt.wantCode, tt.wantDPT)
		}
	}

	for _, middle := range []int{0, 7} {
		if _, ok := table.Lookup(middle); ok {
			t.Errorf("Lookup(%d) found, want skip", middle)
		}
	}
}

func TestNewFunctionTable_Rejects(t *testing.T) {
	tests := []struct {
		name string
		rows []Function
	}{
		{"duplicate middle", []Function{{Middle: 1, Name: "a", Code: 1}, {Middle: 1, Name: "b", Code: 2}}},
		{"negative code", []Function{{Middle: 1, Name: "a", Code: -1}}},
		{"negative middle", []Function{{Middle: -1, Name: "a", Code: 1}}},
		{"blank name", []Function{{Middle: 1, Name: "  ", Code: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFunctionTable(tt.rows)
			if !errors.Is(err, ErrInvalidFunctionTable) {
				t.Errorf("NewFunctionTable() error = %v, want ErrInvalidFunctionTable", err)
			}
		})
	}
}

func TestFunctionTable_OrderedCopy(t *testing.T) {
	table, err := NewFunctionTable([]Function{
		{Middle: 7, Name: "rgb", Code: 9, Canonical: "colour"},
		{Middle: 2, Name: "dim", Code: 1, Canonical: "dimming"},
	})
	if err != nil {
		t.Fatalf("NewFunctionTable() error = %v", err)
	}

	fns := table.Functions()
	if len(fns) != 2 || fns[0].Middle != 2 || fns[1].Middle != 7 {
		t.Fatalf("Functions() = %+v, want middles [2 7]", fns)
	}
	if fns[1].Canonical != "rgb" || fns[1].DPT != "232.600" {
		t.Errorf("Functions()[1] = %+v, want canonical rgb with DPT 232.600", fns[1])
	}

	fns[0].Name = "mutated"
	if fn, _ := table.Lookup(2); fn.Name != "dim" {
		t.Error("Functions() must return a copy")
	}
}

func TestFunctionTable_NilSafe(t *testing.T) {
	var table *FunctionTable
	if _, ok := table.Lookup(1); ok {
		t.Error("nil table Lookup should report not found")
	}
	if table.Len() != 0 || table.Functions() != nil {
		t.Error("nil table should be empty")
	}
}
