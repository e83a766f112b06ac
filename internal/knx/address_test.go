package knx

import (
	"errors"
	"testing"
)

func TestParseGroupAddress(t *testing.T) {
	tests := []struct {
		input string
		want  GroupAddress
	}{
		{"1/2/3", GroupAddress{Main: 1, Middle: 2, Sub: 3}},
		{"0/0/0", GroupAddress{}},
		{"31/7/255", GroupAddress{Main: 31, Middle: 7, Sub: 255}},
		{" 4 / 6 / 160 ", GroupAddress{Main: 4, Middle: 6, Sub: 160}},
		{"40/9/300", GroupAddress{Main: 40, Middle: 9, Sub: 300}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseGroupAddress(tt.input)
			if err != nil {
				t.Fatalf("ParseGroupAddress(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseGroupAddress(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseGroupAddress_Malformed(t *testing.T) {
	inputs := []string{
		"",
		"1/2",
		"1/2/3/4",
		"a/b/c",
		"1//3",
		"1/-2/3",
		"1.2.3",
		"2305",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseGroupAddress(input)
			if !errors.Is(err, ErrMalformedAddress) {
				t.Errorf("ParseGroupAddress(%q) error = %v, want ErrMalformedAddress", input, err)
			}
		})
	}
}

func TestGroupAddress_String(t *testing.T) {
	ga := GroupAddress{Main: 2, Middle: 5, Sub: 17}
	if got := ga.String(); got != "2/5/17" {
		t.Errorf("String() = %q, want %q", got, "2/5/17")
	}
}

func TestGroupAddress_Compare(t *testing.T) {
	tests := []struct {
		a, b GroupAddress
		want int
	}{
		{GroupAddress{1, 1, 1}, GroupAddress{1, 1, 1}, 0},
		{GroupAddress{1, 1, 1}, GroupAddress{2, 0, 0}, -1},
		{GroupAddress{1, 2, 1}, GroupAddress{1, 1, 9}, 1},
		{GroupAddress{1, 1, 80}, GroupAddress{1, 1, 65}, 1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGroupAddress_IsValid(t *testing.T) {
	if !(GroupAddress{Main: 31, Middle: 7, Sub: 255}).IsValid() {
		t.Error("31/7/255 should be valid")
	}
	if (GroupAddress{Main: 32}).IsValid() {
		t.Error("32/0/0 should be invalid")
	}
	if (GroupAddress{Sub: 256}).IsValid() {
		t.Error("0/0/256 should be invalid")
	}
}
