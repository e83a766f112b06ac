// Package xlsx writes minimal single-sheet XLSX workbooks.
//
// The package emits the smallest OOXML package that spreadsheet software
// opens without repair: content types, package relationships, core and
// extended document properties, a workbook naming one sheet, the workbook
// relationships and one worksheet. Every cell is an inline string, so no
// shared-string table or styles part is needed.
//
// Output is deterministic: the same input always produces the same bytes.
package xlsx
