package xlsx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Application is recorded as creator and application in the document
// properties.
const Application = "KNX Group Address Studio"

// maxSheetNameLen is the longest sheet name spreadsheet software accepts.
const maxSheetNameLen = 31

// Part names of the package, in the order they are written.
const (
	partContentTypes = "[Content_Types].xml"
	partRels         = "_rels/.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
	partWorkbook     = "xl/workbook.xml"
	partWorkbookRels = "xl/_rels/workbook.xml.rels"
	partWorksheet    = "xl/worksheets/sheet1.xml"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

// OOXML namespaces and relationship types.
const (
	nsSpreadsheetML   = "http://schemas.openxmlformats.org/spreadsheetml/2006/main"
	nsRelationships   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsOfficeDocRels   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsContentTypes    = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsExtendedProps   = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsDocPropsVTypes  = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsCoreProps       = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	relCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
)

// zipEpoch is stamped on every part so identical input yields identical
// bytes.
var zipEpoch = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// Build writes a workbook with one sheet: a header row followed by rows.
//
// Rows may be ragged; the declared dimension spans the widest row. Cell
// text is markup-escaped but otherwise written as given.
//
// Returns:
//   - []byte: the XLSX package
//   - error: ErrInvalidSheetName, ErrEmptySheet, or a write failure
func Build(sheet string, headers []string, rows [][]string) ([]byte, error) {
	if err := validateSheetName(sheet); err != nil {
		return nil, err
	}

	grid := make([][]string, 0, len(rows)+1)
	if len(headers) > 0 {
		grid = append(grid, headers)
	}
	grid = append(grid, rows...)

	cols := 0
	for _, r := range grid {
		cols = max(cols, len(r))
	}
	if cols == 0 {
		return nil, ErrEmptySheet
	}

	parts := []struct {
		name string
		body string
	}{
		{partContentTypes, contentTypesXML()},
		{partRels, packageRelsXML()},
		{partCore, coreXML()},
		{partApp, appXML()},
		{partWorkbook, workbookXML(sheet)},
		{partWorkbookRels, workbookRelsXML()},
		{partWorksheet, worksheetXML(grid, cols)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     p.name,
			Method:   zip.Deflate,
			Modified: zipEpoch,
		})
		if err != nil {
			return nil, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing package: %w", err)
	}

	return buf.Bytes(), nil
}

func validateSheetName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: empty", ErrInvalidSheetName)
	case len([]rune(name)) > maxSheetNameLen:
		return fmt.Errorf("%w: %q is longer than %d characters", ErrInvalidSheetName, name, maxSheetNameLen)
	case strings.ContainsAny(name, `[]:*?/\`):
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidSheetName, name)
	case strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'"):
		return fmt.Errorf("%w: %q starts or ends with an apostrophe", ErrInvalidSheetName, name)
	}
	return nil
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

func worksheetXML(grid [][]string, cols int) string {
	var b strings.Builder

	b.WriteString(xmlDeclaration)
	b.WriteString(`<worksheet xmlns="` + nsSpreadsheetML + `">`)
	b.WriteString(`<dimension ref="` + Dimension(len(grid), cols) + `"/>`)
	b.WriteString(`<sheetViews><sheetView workbookViewId="0"/></sheetViews>`)
	b.WriteString(`<sheetFormatPr defaultRowHeight="15"/>`)
	b.WriteString(`<sheetData>`)

	for r, row := range grid {
		rowNum := strconv.Itoa(r + 1)
		b.WriteString(`<row r="` + rowNum + `">`)
		for c, value := range row {
			b.WriteString(`<c r="` + ColumnName(c+1) + rowNum + `" t="inlineStr"><is>`)
			if value != strings.TrimSpace(value) {
				b.WriteString(`<t xml:space="preserve">`)
			} else {
				b.WriteString(`<t>`)
			}
			b.WriteString(escape(value))
			b.WriteString(`</t></is></c>`)
		}
		b.WriteString(`</row>`)
	}

	b.WriteString(`</sheetData></worksheet>`)
	return b.String()
}

func workbookXML(sheet string) string {
	return xmlDeclaration +
		`<workbook xmlns="` + nsSpreadsheetML + `" xmlns:r="` + nsOfficeDocRels + `">` +
		`<sheets><sheet name="` + escape(sheet) + `" sheetId="1" r:id="rId1"/></sheets>` +
		`</workbook>`
}

func contentTypesXML() string {
	return xmlDeclaration +
		`<Types xmlns="` + nsContentTypes + `">` +
		`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
		`<Default Extension="xml" ContentType="application/xml"/>` +
		`<Override PartName="/` + partWorkbook + `" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.sheet.main+xml"/>` +
		`<Override PartName="/` + partWorksheet + `" ContentType="application/vnd.openxmlformats-officedocument.spreadsheetml.worksheet+xml"/>` +
		`<Override PartName="/` + partCore + `" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
		`<Override PartName="/` + partApp + `" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
		`</Types>`
}

func packageRelsXML() string {
	return xmlDeclaration +
		`<Relationships xmlns="` + nsRelationships + `">` +
		`<Relationship Id="rId1" Type="` + nsOfficeDocRels + `/officeDocument" Target="` + partWorkbook + `"/>` +
		`<Relationship Id="rId2" Type="` + relCoreProperties + `" Target="` + partCore + `"/>` +
		`<Relationship Id="rId3" Type="` + nsOfficeDocRels + `/extended-properties" Target="` + partApp + `"/>` +
		`</Relationships>`
}

func workbookRelsXML() string {
	return xmlDeclaration +
		`<Relationships xmlns="` + nsRelationships + `">` +
		`<Relationship Id="rId1" Type="` + nsOfficeDocRels + `/worksheet" Target="worksheets/sheet1.xml"/>` +
		`</Relationships>`
}

func coreXML() string {
	return xmlDeclaration +
		`<cp:coreProperties xmlns:cp="` + nsCoreProps + `" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" ` +
		`xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:dcmitype="http://purl.org/dc/dcmitype/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:creator>` + Application + `</dc:creator>` +
		`<cp:lastModifiedBy>` + Application + `</cp:lastModifiedBy>` +
		`</cp:coreProperties>`
}

func appXML() string {
	return xmlDeclaration +
		`<Properties xmlns="` + nsExtendedProps + `" xmlns:vt="` + nsDocPropsVTypes + `">` +
		`<Application>` + Application + `</Application>` +
		`</Properties>`
}
