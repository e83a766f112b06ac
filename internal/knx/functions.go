package knx

import (
	"fmt"
	"sort"
	"strings"
)

// FunctionDef defines a canonical KNX lighting function with its default DPT
// and accepted aliases. Function table entries refer to these by name.
type FunctionDef struct {
	Name    string   // Canonical name (e.g. "switch")
	DPT     string   // Default DPT (e.g. "1.001")
	Aliases []string // Accepted aliases that normalise to this name
}

// CanonicalFunctions lists the lighting functions a gateway convention can
// bind to a middle group.
var CanonicalFunctions = []FunctionDef{
	{Name: "switch", DPT: "1.001", Aliases: []string{"on_off", "switching"}},
	{Name: "switch_status", DPT: "1.001", Aliases: []string{"switch_feedback"}},
	{Name: "brightness", DPT: "5.001", Aliases: []string{"dim", "dimming", "level"}},
	{Name: "brightness_status", DPT: "5.001", Aliases: []string{"dim_status", "dim_feedback"}},
	{Name: "color_temperature", DPT: "7.600", Aliases: []string{"ct", "colour_temperature", "colour_temp", "color_temp"}},                              //nolint:misspell // KNX standard uses American "color" for DPT 7.600
	{Name: "color_temperature_status", DPT: "7.600", Aliases: []string{"colour_temperature_status", "colour_temp_status", "color_temp_status"}}, //nolint:misspell // KNX standard uses American "color" for DPT 7.600
	{Name: "rgb", DPT: "232.600", Aliases: []string{"colour"}},
	{Name: "rgb_status", DPT: "232.600", Aliases: []string{}},
	{Name: "dimming_control", DPT: "3.007", Aliases: []string{"relative_dimming"}},
}

// Lookup maps built once at init.
var (
	functionByName  map[string]*FunctionDef // canonical name → definition
	functionByAlias map[string]*FunctionDef // alias → definition
)

func init() {
	functionByName = make(map[string]*FunctionDef, len(CanonicalFunctions))
	functionByAlias = make(map[string]*FunctionDef, len(CanonicalFunctions)*2)

	for i := range CanonicalFunctions {
		fn := &CanonicalFunctions[i]
		functionByName[fn.Name] = fn
		for _, alias := range fn.Aliases {
			functionByAlias[alias] = fn
		}
	}
}

// NormalizeFunction resolves a function name to its canonical form.
// Returns the canonical name and whether it was recognised.
func NormalizeFunction(name string) (canonical string, known bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if _, ok := functionByName[lower]; ok {
		return lower, true
	}
	if fn, ok := functionByAlias[lower]; ok {
		return fn.Name, true
	}
	return name, false
}

// DefaultDPTForFunction returns the default DPT for a canonical or alias
// function name, or "" if the name is not recognised.
func DefaultDPTForFunction(name string) string {
	canonical, known := NormalizeFunction(name)
	if !known {
		return ""
	}
	return functionByName[canonical].DPT
}

// Function is one row of a gateway's middle-group table: the middle level
// selects a semantic function and the numeric code used in object names.
type Function struct {
	Middle    int    `json:"middle" yaml:"middle"`
	Name      string `json:"name" yaml:"name"`
	Code      int    `json:"code" yaml:"code"`
	Canonical string `json:"canonical,omitempty" yaml:"canonical,omitempty"`
	DPT       string `json:"dpt,omitempty" yaml:"dpt,omitempty"`
}

// FunctionTable maps middle group numbers to functions.
//
// The table is immutable after construction and safe for concurrent use.
type FunctionTable struct {
	byMiddle map[int]Function
	ordered  []Function
}

// NewFunctionTable builds a table from its rows.
//
// Canonical names are normalised through CanonicalFunctions and an empty
// DPT is filled from the canonical default. Duplicate middle keys, negative
// middle keys, negative codes and blank names are rejected with
// ErrInvalidFunctionTable.
func NewFunctionTable(rows []Function) (*FunctionTable, error) {
	t := &FunctionTable{byMiddle: make(map[int]Function, len(rows))}

	for _, fn := range rows {
		if fn.Middle < 0 {
			return nil, fmt.Errorf("%w: middle %d is negative", ErrInvalidFunctionTable, fn.Middle)
		}
		if fn.Code < 0 {
			return nil, fmt.Errorf("%w: middle %d has negative code %d", ErrInvalidFunctionTable, fn.Middle, fn.Code)
		}
		if strings.TrimSpace(fn.Name) == "" {
			return nil, fmt.Errorf("%w: middle %d has no name", ErrInvalidFunctionTable, fn.Middle)
		}
		if _, dup := t.byMiddle[fn.Middle]; dup {
			return nil, fmt.Errorf("%w: middle %d defined twice", ErrInvalidFunctionTable, fn.Middle)
		}

		if fn.Canonical != "" {
			if canonical, known := NormalizeFunction(fn.Canonical); known {
				fn.Canonical = canonical
			}
		}
		if fn.DPT == "" {
			fn.DPT = DefaultDPTForFunction(fn.Canonical)
		}

		t.byMiddle[fn.Middle] = fn
		t.ordered = append(t.ordered, fn)
	}

	sort.Slice(t.ordered, func(i, j int) bool {
		return t.ordered[i].Middle < t.ordered[j].Middle
	})

	return t, nil
}

// DefaultFunctions returns the rows of the MaiLian DALI tunable-white
// gateway table (device #9).
func DefaultFunctions() []Function {
	return []Function{
		{Middle: 1, Name: "开关写", Code: 3, Canonical: "switch"},
		{Middle: 2, Name: "亮度写", Code: 1, Canonical: "brightness"},
		{Middle: 3, Name: "色温写", Code: 5, Canonical: "color_temperature"}, //nolint:misspell // KNX standard term
		{Middle: 4, Name: "开关读", Code: 2, Canonical: "switch_status"},
		{Middle: 5, Name: "亮度读", Code: 0, Canonical: "brightness_status"},
		{Middle: 6, Name: "色温读", Code: 4, Canonical: "color_temperature_status"}, //nolint:misspell // KNX standard term
	}
}

// DefaultFunctionTable returns the table built from DefaultFunctions.
func DefaultFunctionTable() *FunctionTable {
	t, err := NewFunctionTable(DefaultFunctions())
	if err != nil {
		panic(fmt.Sprintf("knx: default function table is invalid: %v", err))
	}
	return t
}

// Lookup returns the function bound to a middle group.
// The boolean is false when the middle group is not renameable; callers
// treat that as a skip, not an error.
func (t *FunctionTable) Lookup(middle int) (Function, bool) {
	if t == nil {
		return Function{}, false
	}
	fn, ok := t.byMiddle[middle]
	return fn, ok
}

// Functions returns the table rows ordered by middle group.
func (t *FunctionTable) Functions() []Function {
	if t == nil {
		return nil
	}
	out := make([]Function, len(t.ordered))
	copy(out, t.ordered)
	return out
}

// Len returns the number of rows in the table.
func (t *FunctionTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.ordered)
}
