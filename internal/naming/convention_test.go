package naming

import (
	"errors"
	"testing"

	"github.com/nerrad567/knx-ga-studio/internal/knx"
)

func TestDefaultConventionValid(t *testing.T) {
	if err := DefaultConvention().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestConventionValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Convention)
	}{
		{"zero block size", func(c *Convention) { c.BlockSize = 0 }},
		{"slots do not fill block", func(c *Convention) { c.LightsPerModule = 60 }},
		{"negative groups", func(c *Convention) { c.GroupsPerModule = -1; c.LightsPerModule = 81 }},
		{"negative device", func(c *Convention) { c.DeviceID = -1 }},
		{"negative module bound", func(c *Convention) { c.MaxModulesPerMain = -2 }},
		{"inverted main range", func(c *Convention) { c.MinMain = 5; c.MaxMain = 4 }},
		{"empty label", func(c *Convention) { c.GroupLabel = " " }},
		{"equal labels", func(c *Convention) { c.GroupLabel = c.LightLabel }},
		{"no functions", func(c *Convention) { c.Functions = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConvention()
			tt.mutate(&c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConvention) {
				t.Errorf("Validate() error = %v, want ErrInvalidConvention", err)
			}
		})
	}
}

func TestConventionEligible(t *testing.T) {
	c := DefaultConvention()

	tests := []struct {
		ga       knx.GroupAddress
		eligible bool
		code     int
	}{
		{knx.GroupAddress{Main: 1, Middle: 1, Sub: 1}, true, 3},
		{knx.GroupAddress{Main: 0, Middle: 5, Sub: 160}, true, 0},
		{knx.GroupAddress{Main: 1, Middle: 6, Sub: 80}, true, 4},
		{knx.GroupAddress{Main: 1, Middle: 0, Sub: 1}, false, 0},
		{knx.GroupAddress{Main: 1, Middle: 7, Sub: 1}, false, 0},
		{knx.GroupAddress{Main: 1, Middle: 1, Sub: 0}, false, 0},
		{knx.GroupAddress{Main: 1, Middle: 1, Sub: 161}, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.ga.String(), func(t *testing.T) {
			fn, err := c.Eligible(tt.ga)
			if tt.eligible {
				if err != nil {
					t.Fatalf("Eligible() error = %v", err)
				}
				if fn.Code != tt.code {
					t.Errorf("Eligible() code = %d, want %d", fn.Code, tt.code)
				}
				return
			}
			if !errors.Is(err, ErrIneligibleAddress) {
				t.Errorf("Eligible() error = %v, want ErrIneligibleAddress", err)
			}
		})
	}
}

func TestConventionEligibleUnbounded(t *testing.T) {
	c := DefaultConvention()
	c.MaxModulesPerMain = 0

	if _, err := c.Eligible(knx.GroupAddress{Main: 1, Middle: 1, Sub: 255}); err != nil {
		t.Errorf("Eligible() error = %v with unbounded modules", err)
	}
}

func TestConventionMainRange(t *testing.T) {
	c := DefaultConvention()
	c.MinMain, c.MaxMain = 2, 3

	if _, err := c.Eligible(knx.GroupAddress{Main: 1, Middle: 1, Sub: 1}); !errors.Is(err, ErrIneligibleAddress) {
		t.Errorf("Eligible(main 1) error = %v, want ErrIneligibleAddress", err)
	}
	if _, err := c.Eligible(knx.GroupAddress{Main: 3, Middle: 1, Sub: 1}); err != nil {
		t.Errorf("Eligible(main 3) error = %v", err)
	}
}

func TestParseLabel(t *testing.T) {
	c := DefaultConvention()

	tests := []struct {
		in   string
		want ObjectType
		ok   bool
	}{
		{"灯", ObjectLight, true},
		{" 组 ", ObjectGroup, true},
		{"Light", ObjectLight, true},
		{"GROUP", ObjectGroup, true},
		{"lamp", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := c.ParseLabel(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLabel(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestObjectTypeText(t *testing.T) {
	for _, typ := range []ObjectType{ObjectLight, ObjectGroup} {
		text, err := typ.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText() error = %v", err)
		}
		var got ObjectType
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", text, err)
		}
		if got != typ {
			t.Errorf("text round trip = %v, want %v", got, typ)
		}
	}

	if _, err := ObjectType(0).MarshalText(); err == nil {
		t.Error("MarshalText() of zero type should fail")
	}
}
