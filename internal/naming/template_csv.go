package naming

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Template CSV column names.
const (
	ColumnObjectType = "object_type"
	ColumnObjectNo   = "object_no"
	ColumnBaseName   = "base_name"
)

const utf8BOM = "\ufeff"

// EncodeTemplateCSV writes rows as CSV with a header line. Object types
// are written as the convention's labels.
func (c Convention) EncodeTemplateCSV(w io.Writer, rows []TemplateRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColumnObjectType, ColumnObjectNo, ColumnBaseName}); err != nil {
		return fmt.Errorf("writing template header: %w", err)
	}
	for _, row := range rows {
		rec := []string{c.Label(row.ObjectType), strconv.Itoa(row.ObjectNo), row.BaseName}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing template row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DecodeTemplateCSV reads template rows.
//
// Columns are located by header name, in any order; extra columns are
// ignored and a leading UTF-8 BOM is tolerated. Rows with a blank object
// type or an unreadable number are reported and skipped.
//
// Returns:
//   - []TemplateRow: rows that could be decoded, with Line set
//   - []RowError: per-row problems
//   - error: ErrInvalidTemplate if the header is missing a column or the
//     CSV itself is unreadable
func (c Convention) DecodeTemplateCSV(r io.Reader) ([]TemplateRow, []RowError, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: empty file", ErrInvalidTemplate)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range []string{ColumnObjectType, ColumnObjectNo, ColumnBaseName} {
		if _, ok := idx[col]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", ErrInvalidTemplate, col)
		}
	}

	var (
		rows    []TemplateRow
		rowErrs []RowError
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		line, _ := cr.FieldPos(0)

		field := func(col string) string {
			if i := idx[col]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}

		typText, noText, base := field(ColumnObjectType), field(ColumnObjectNo), field(ColumnBaseName)
		if typText == "" && noText == "" && base == "" {
			continue
		}

		typ, ok := c.ParseLabel(typText)
		if !ok {
			rowErrs = append(rowErrs, newRowError(line, "unknown object type %q", typText))
			continue
		}
		no, err := parseObjectNo(noText)
		if err != nil {
			rowErrs = append(rowErrs, newRowError(line, "object number %q: %v", noText, err))
			continue
		}

		rows = append(rows, TemplateRow{ObjectType: typ, ObjectNo: no, BaseName: base, Line: line})
	}

	return rows, rowErrs, nil
}

// parseObjectNo accepts integers and integral decimals such as "12.0",
// which spreadsheet tools tend to produce.
func parseObjectNo(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.New("not a number")
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, errors.New("not an integer")
	}
	return int(f), nil
}
