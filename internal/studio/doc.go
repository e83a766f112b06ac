// Package studio turns an ETS group address export into renamed artifacts.
//
// A Service ties the pieces together for both the command line and the
// HTTP server:
//
//	svc, err := studio.New(studio.Deps{Convention: conv, Logger: logger})
//	batch, err := svc.Parse(ctx, doc)
//	xml, err := svc.ExportDocument(ctx, doc, batch, overrides)
//	book, err := svc.ExportWorkbook(ctx, batch, overrides)
//
// Overrides map an address to the name the user typed. Blank overrides
// are ignored, so the generated name stands.
//
// Every successful operation is reported to the optional Publisher and
// MetricsWriter. Their failures are logged and never fail the operation.
package studio
