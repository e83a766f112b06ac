package studio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/nerrad567/knx-ga-studio/internal/commissioning/etsimport"
	"github.com/nerrad567/knx-ga-studio/internal/infrastructure/logging"
	"github.com/nerrad567/knx-ga-studio/internal/knx"
	"github.com/nerrad567/knx-ga-studio/internal/naming"
	"github.com/nerrad567/knx-ga-studio/internal/xlsx"
)

// File permissions for offline outputs.
const (
	outputDirPermissions  = 0o755
	outputFilePermissions = 0o644
)

// Deps holds the dependencies of a Service.
type Deps struct {
	Convention naming.Convention
	Logger     *logging.Logger

	// Publisher and Metrics are optional.
	Publisher Publisher
	Metrics   MetricsWriter
}

// Service runs parse and export operations under one convention.
// It holds no per-batch state and is safe for concurrent use.
type Service struct {
	conv      naming.Convention
	logger    *logging.Logger
	publisher Publisher
	metrics   MetricsWriter
}

// New creates a Service after validating the convention.
func New(deps Deps) (*Service, error) {
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if err := deps.Convention.Validate(); err != nil {
		return nil, err
	}
	return &Service{
		conv:      deps.Convention,
		logger:    deps.Logger,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
	}, nil
}

// Convention returns the convention the service names with.
func (s *Service) Convention() naming.Convention {
	return s.conv
}

// Batch is the resolved content of one document.
type Batch struct {
	// Entries carry generated names as their final names.
	Entries []naming.Entry `json:"entries"`
	Summary Summary        `json:"summary"`
}

// TemplateImport is the outcome of applying a CSV template to a batch.
type TemplateImport struct {
	// Names maps every address of the batch to its name after the import.
	Names map[string]string `json:"names"`

	// Applied is the number of distinct objects renamed by valid rows.
	Applied int `json:"applied"`

	// Updated is the number of entries whose name changed.
	Updated int `json:"updated"`

	Errors []naming.RowError `json:"errors"`
}

// Report describes an offline conversion.
type Report struct {
	// Converted is the number of GroupAddress elements renamed in the document.
	Converted int

	// Rows is the number of worksheet rows below the header.
	Rows int

	XMLOutput  string
	XLSXOutput string
	Summary    Summary
}

// Parse reads the group addresses of doc and resolves their names.
//
// Malformed addresses are counted and skipped. A document that is not an
// XML group address export fails with an etsimport error.
func (s *Service) Parse(ctx context.Context, doc []byte) (*Batch, error) {
	started := time.Now()

	batch, err := s.resolve(ctx, doc)
	if err != nil {
		return nil, err
	}

	s.logger.Info("parsed group addresses",
		"addresses", batch.Summary.AddressCount,
		"entries", len(batch.Entries),
		"skipped", batch.Summary.Skipped(),
	)
	s.emit(EventParsed, batch.Summary, 0, len(doc), started)

	return batch, nil
}

// Restore resolves a document that was parsed before, for example when a
// cached batch has been evicted. Unlike Parse it reports no event.
func (s *Service) Restore(ctx context.Context, doc []byte) (*Batch, error) {
	return s.resolve(ctx, doc)
}

func (s *Service) resolve(ctx context.Context, doc []byte) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	read, err := etsimport.ReadGroupAddresses(doc)
	switch {
	case errors.Is(err, etsimport.ErrNoGroupAddresses):
		s.logger.Info("document has no group addresses, resolving an empty batch")
	case err != nil:
		return nil, fmt.Errorf("reading group addresses: %w", err)
	}

	sources := make([]naming.Source, 0, len(read))
	malformed := 0
	for _, g := range read {
		ga, err := knx.ParseGroupAddress(g.Address)
		if err != nil {
			malformed++
			s.logger.Debug("skipping group address", "address", g.Address, "error", err)
			continue
		}
		sources = append(sources, naming.Source{
			Address:  ga,
			Text:     g.Address,
			Name:     g.Name,
			DPT:      g.DPT,
			Location: g.Location,
		})
	}

	res := s.conv.Resolve(sources)
	return &Batch{
		Entries: res.Entries,
		Summary: summarise(res, len(read), malformed),
	}, nil
}

// Names returns the address → name map for batch with overrides applied.
func (s *Service) Names(batch *Batch, overrides map[string]string) map[string]string {
	return naming.MergeOverrides(naming.NameMap(batch.Entries), overrides)
}

// ExportDocument rewrites the Name attribute of every renamed address in doc.
func (s *Service) ExportDocument(ctx context.Context, doc []byte, batch *Batch, overrides map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, _, err := s.exportDocument(doc, batch, overrides)
	return out, err
}

// exportDocument patches doc and reports how many elements were renamed.
func (s *Service) exportDocument(doc []byte, batch *Batch, overrides map[string]string) ([]byte, int, error) {
	started := time.Now()

	out, renamed, err := etsimport.ApplyNames(doc, s.Names(batch, overrides))
	if err != nil {
		return nil, 0, fmt.Errorf("applying names: %w", err)
	}

	s.emit(EventExportedXML, batch.Summary, renamed, len(out), started)
	return out, renamed, nil
}

// ExportWorkbook writes the mapping worksheet for batch.
func (s *Service) ExportWorkbook(ctx context.Context, batch *Batch, overrides map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	started := time.Now()

	entries := naming.ApplyOverrides(batch.Entries, overrides)
	out, err := xlsx.Build(WorkbookSheet, WorkbookHeaders, workbookRows(entries))
	if err != nil {
		return nil, fmt.Errorf("building workbook: %w", err)
	}

	s.emit(EventExportedXLSX, batch.Summary, 0, len(out), started)
	return out, nil
}

// ExportTemplate returns the per-object CSV template for batch.
func (s *Service) ExportTemplate(batch *Batch, overrides map[string]string) ([]byte, error) {
	entries := naming.ApplyOverrides(batch.Entries, overrides)

	var buf bytes.Buffer
	if err := s.conv.EncodeTemplateCSV(&buf, s.conv.ExportTemplate(entries)); err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportTemplate applies a CSV template on top of the current overrides.
//
// A template whose header is unusable fails with naming.ErrInvalidTemplate.
// Bad rows are reported in TemplateImport.Errors and the valid rows still
// apply.
func (s *Service) ImportTemplate(batch *Batch, overrides map[string]string, csv io.Reader) (*TemplateImport, error) {
	started := time.Now()

	rows, rowErrs, err := s.conv.DecodeTemplateCSV(csv)
	if err != nil {
		return nil, err
	}

	entries, report := s.conv.ImportTemplate(naming.ApplyOverrides(batch.Entries, overrides), rows)

	errs := append(rowErrs, report.Errors...)
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Line < errs[j].Line })
	if errs == nil {
		errs = []naming.RowError{}
	}

	imp := &TemplateImport{
		Names:   naming.NameMap(entries),
		Applied: report.Applied,
		Updated: report.Updated,
		Errors:  errs,
	}

	s.logger.Info("imported name template",
		"rows", len(rows),
		"applied", imp.Applied,
		"updated", imp.Updated,
		"errors", len(imp.Errors),
	)
	s.emit(EventTemplateImported, batch.Summary, imp.Updated, 0, started)

	return imp, nil
}

// ConvertFiles runs the offline conversion: read xmlIn, write the renamed
// document to xmlOut and the mapping worksheet to xlsxOut. Output
// directories are created as needed.
func (s *Service) ConvertFiles(ctx context.Context, xmlIn, xmlOut, xlsxOut string) (*Report, error) {
	doc, err := os.ReadFile(xmlIn)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	batch, err := s.Parse(ctx, doc)
	if err != nil {
		return nil, err
	}

	renamedDoc, renamed, err := s.exportDocument(doc, batch, nil)
	if err != nil {
		return nil, err
	}

	book, err := s.ExportWorkbook(ctx, batch, nil)
	if err != nil {
		return nil, err
	}

	if err := writeOutput(xmlOut, renamedDoc); err != nil {
		return nil, err
	}
	if err := writeOutput(xlsxOut, book); err != nil {
		return nil, err
	}

	return &Report{
		Converted:  renamed,
		Rows:       len(batch.Entries),
		XMLOutput:  xmlOut,
		XLSXOutput: xlsxOut,
		Summary:    batch.Summary,
	}, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), outputDirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, outputFilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
