package naming

import (
	"fmt"
	"strings"
)

// TemplateRow names one object. Every entry of the object receives
// "<BaseName> <deviceId> <functionCode>" on import.
type TemplateRow struct {
	ObjectType ObjectType `json:"object_kind"`
	ObjectNo   int        `json:"object_no"`
	BaseName   string     `json:"base_name"`

	// Line is the 1-based source line when the row was decoded from CSV.
	Line int `json:"line,omitempty"`
}

// RowError reports a template row that could not be applied.
type RowError struct {
	Line int    `json:"line"`
	Err  error  `json:"-"`
	Msg  string `json:"message"`
}

func newRowError(line int, format string, args ...any) RowError {
	err := fmt.Errorf("%w: "+format, append([]any{ErrInvalidTemplate}, args...)...)
	return RowError{Line: line, Err: err, Msg: err.Error()}
}

func (e RowError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e RowError) Unwrap() error { return e.Err }

// ImportReport summarises a template import.
type ImportReport struct {
	// Applied counts rows that matched at least one entry.
	Applied int `json:"applied"`

	// Updated counts entries whose final name changed.
	Updated int `json:"updated"`

	Errors []RowError `json:"errors"`
}

// ExportTemplate returns one row per distinct object, in entry order.
// The base name comes from the first entry of each object.
func (c Convention) ExportTemplate(entries []Entry) []TemplateRow {
	seen := make(map[objectKey]bool)
	rows := make([]TemplateRow, 0)

	for _, e := range entries {
		key := e.Identity().key()
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, TemplateRow{
			ObjectType: e.ObjectType,
			ObjectNo:   e.ObjectNo,
			BaseName:   c.BaseName(e.FinalName, e.FunctionCode),
		})
	}
	return rows
}

// ImportTemplate applies template rows to a copy of entries.
//
// Invalid rows are reported in the ImportReport and skipped; valid rows
// are still applied. When several rows name the same object the last one
// wins.
//
// A row whose base equals the object's exported base leaves the object
// as it is, so importing an unedited export changes nothing. Otherwise an
// entry already carrying the base is kept, even without the suffix.
func (c Convention) ImportTemplate(entries []Entry, rows []TemplateRow) ([]Entry, ImportReport) {
	var report ImportReport

	current := make(map[objectKey]string, len(entries))
	for _, row := range c.ExportTemplate(entries) {
		current[objectKey{typ: row.ObjectType, no: row.ObjectNo}] = row.BaseName
	}

	bases := make(map[objectKey]string, len(rows))
	for _, row := range rows {
		base := strings.TrimSpace(row.BaseName)
		key := objectKey{typ: row.ObjectType, no: row.ObjectNo}

		switch {
		case row.ObjectType != ObjectLight && row.ObjectType != ObjectGroup:
			report.Errors = append(report.Errors, newRowError(row.Line, "unknown object type"))
		case row.ObjectNo < 1:
			report.Errors = append(report.Errors, newRowError(row.Line, "object number %d must be positive", row.ObjectNo))
		case base == "":
			report.Errors = append(report.Errors, newRowError(row.Line, "base name is empty"))
		case !hasKey(current, key):
			report.Errors = append(report.Errors, newRowError(row.Line, "%s%d is not in this batch", c.Label(row.ObjectType), row.ObjectNo))
		default:
			if _, dup := bases[key]; !dup {
				report.Applied++
			}
			bases[key] = base
		}
	}

	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e
		key := e.Identity().key()
		base, ok := bases[key]
		if !ok || base == current[key] || c.BaseName(e.FinalName, e.FunctionCode) == base {
			continue
		}
		out[i].FinalName = c.ExpandBaseName(base, e.FunctionCode)
		report.Updated++
	}

	return out, report
}

func hasKey(m map[objectKey]string, key objectKey) bool {
	_, ok := m[key]
	return ok
}
