package naming

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestExportTemplate(t *testing.T) {
	c := DefaultConvention()
	res := c.Resolve(sources(t, "1/1/1", "1/4/1", "1/1/65", "1/2/2"))
	entries := ApplyOverrides(res.Entries, map[string]string{"1/4/1": "Desk 9 2", "1/1/1": "ignored"})

	rows := c.ExportTemplate(entries)

	want := []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 1, BaseName: "ignored"},
		{ObjectType: ObjectGroup, ObjectNo: 1, BaseName: "组1"},
		{ObjectType: ObjectLight, ObjectNo: 2, BaseName: "灯2"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("ExportTemplate() = %+v, want %+v", rows, want)
	}
}

func TestTemplateRoundTrip(t *testing.T) {
	c := DefaultConvention()
	addrs := []string{"0/1/1", "0/2/1", "0/4/1", "0/1/70", "0/5/70", "2/3/90", "2/6/90"}

	tests := []struct {
		name      string
		overrides map[string]string
	}{
		{"generated names", nil},
		{"suffixed overrides", map[string]string{
			"0/1/1": "Lobby 9 3",
			"0/2/1": "Lobby 9 1",
			"0/4/1": "Lobby 9 2",
		}},
		{"override without suffix", map[string]string{"0/1/1": "Kitchen"}},
		{"mixed overrides on one object", map[string]string{
			"0/1/70": "Kitchen",
			"0/5/70": "Hall 9 0",
			"2/3/90": "Desk 9 2",
			"2/6/90": "Shelf",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := ApplyOverrides(c.Resolve(sources(t, addrs...)).Entries, tt.overrides)

			got, report := c.ImportTemplate(entries, c.ExportTemplate(entries))

			if len(report.Errors) != 0 {
				t.Fatalf("ImportTemplate() errors = %v", report.Errors)
			}
			for i := range entries {
				if got[i].FinalName != entries[i].FinalName {
					t.Errorf("%s: FinalName = %q, want %q", entries[i].Address, got[i].FinalName, entries[i].FinalName)
				}
			}
			if report.Updated != 0 {
				t.Errorf("Updated = %d, want 0", report.Updated)
			}
		})
	}
}

func TestImportTemplateKeepsEntriesWithBase(t *testing.T) {
	c := DefaultConvention()
	entries := ApplyOverrides(c.Resolve(sources(t, "1/1/1", "1/2/1")).Entries, map[string]string{
		"1/1/1": "Lamp",
		"1/2/1": "Desk",
	})

	got, report := c.ImportTemplate(entries, []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 1, BaseName: "Desk"},
	})

	if report.Applied != 1 || report.Updated != 1 {
		t.Errorf("report = %+v, want 1 applied 1 updated", report)
	}
	if got[0].FinalName != "Desk 9 3" {
		t.Errorf("1/1/1: FinalName = %q, want %q", got[0].FinalName, "Desk 9 3")
	}
	if got[1].FinalName != "Desk" {
		t.Errorf("1/2/1: FinalName = %q, want %q", got[1].FinalName, "Desk")
	}
}

func TestImportTemplateAppliesToAllFunctions(t *testing.T) {
	c := DefaultConvention()
	res := c.Resolve(sources(t, "1/1/1", "1/2/1", "1/5/1", "1/1/2"))

	got, report := c.ImportTemplate(res.Entries, []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 1, BaseName: " Kitchen "},
	})

	if report.Applied != 1 || report.Updated != 3 {
		t.Errorf("report = %+v, want 1 applied 3 updated", report)
	}

	want := map[string]string{
		"1/1/1": "Kitchen 9 3",
		"1/2/1": "Kitchen 9 1",
		"1/5/1": "Kitchen 9 0",
		"1/1/2": "灯2 9 3",
	}
	for _, e := range got {
		if e.FinalName != want[e.Address] {
			t.Errorf("%s: FinalName = %q, want %q", e.Address, e.FinalName, want[e.Address])
		}
	}
}

func TestImportTemplateReportsBadRows(t *testing.T) {
	c := DefaultConvention()
	res := c.Resolve(sources(t, "1/1/1", "1/1/2"))

	got, report := c.ImportTemplate(res.Entries, []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 1, BaseName: "", Line: 2},
		{ObjectType: ObjectLight, ObjectNo: 0, BaseName: "x", Line: 3},
		{ObjectType: ObjectGroup, ObjectNo: 1, BaseName: "x", Line: 4},
		{ObjectType: 0, ObjectNo: 1, BaseName: "x", Line: 5},
		{ObjectType: ObjectLight, ObjectNo: 2, BaseName: "first", Line: 6},
		{ObjectType: ObjectLight, ObjectNo: 2, BaseName: "Hall", Line: 7},
	})

	if len(report.Errors) != 4 {
		t.Fatalf("len(Errors) = %d, want 4: %v", len(report.Errors), report.Errors)
	}
	for i, rowErr := range report.Errors {
		if !errors.Is(rowErr, ErrInvalidTemplate) {
			t.Errorf("Errors[%d] = %v, want ErrInvalidTemplate", i, rowErr)
		}
		if rowErr.Line != i+2 {
			t.Errorf("Errors[%d].Line = %d, want %d", i, rowErr.Line, i+2)
		}
	}
	if report.Applied != 1 {
		t.Errorf("Applied = %d, want 1", report.Applied)
	}
	if got[0].FinalName != "灯1 9 3" || got[1].FinalName != "Hall 9 3" {
		t.Errorf("final names = %q, %q", got[0].FinalName, got[1].FinalName)
	}
}

func TestTemplateCSVRoundTrip(t *testing.T) {
	c := DefaultConvention()
	rows := []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 1, BaseName: "Kitchen, north"},
		{ObjectType: ObjectGroup, ObjectNo: 16, BaseName: `All "downstairs"`},
	}

	var buf bytes.Buffer
	if err := c.EncodeTemplateCSV(&buf, rows); err != nil {
		t.Fatalf("EncodeTemplateCSV() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "object_type,object_no,base_name\n") {
		t.Errorf("header = %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	got, rowErrs, err := c.DecodeTemplateCSV(&buf)
	if err != nil {
		t.Fatalf("DecodeTemplateCSV() error = %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("row errors = %v", rowErrs)
	}
	for i := range rows {
		rows[i].Line = i + 2
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("DecodeTemplateCSV() = %+v, want %+v", got, rows)
	}
}

func TestDecodeTemplateCSVLenient(t *testing.T) {
	c := DefaultConvention()
	input := "\ufeffnote,Base_Name,OBJECT_NO,object_type\n" +
		"x,Kitchen,3.0,灯\n" +
		",,,\n" +
		"y,Hall,abc,light\n" +
		"z,Stairs,2,lamp\n" +
		"w,Zone,4,group\n"

	rows, rowErrs, err := c.DecodeTemplateCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeTemplateCSV() error = %v", err)
	}

	want := []TemplateRow{
		{ObjectType: ObjectLight, ObjectNo: 3, BaseName: "Kitchen", Line: 2},
		{ObjectType: ObjectGroup, ObjectNo: 4, BaseName: "Zone", Line: 6},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
	if len(rowErrs) != 2 || rowErrs[0].Line != 4 || rowErrs[1].Line != 5 {
		t.Errorf("row errors = %v", rowErrs)
	}
}

func TestDecodeTemplateCSVMissingColumn(t *testing.T) {
	c := DefaultConvention()

	for _, input := range []string{"", "object_type,base_name\n灯,x\n"} {
		if _, _, err := c.DecodeTemplateCSV(strings.NewReader(input)); !errors.Is(err, ErrInvalidTemplate) {
			t.Errorf("DecodeTemplateCSV(%q) error = %v, want ErrInvalidTemplate", input, err)
		}
	}
}
