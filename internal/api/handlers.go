package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/knx-ga-studio/internal/commissioning/etsimport"
	"github.com/nerrad567/knx-ga-studio/internal/naming"
	"github.com/nerrad567/knx-ga-studio/internal/session"
	"github.com/nerrad567/knx-ga-studio/internal/studio"
)

// Download names and content types.
const (
	filenameXML      = "knx_converted.xml"
	filenameXLSX     = "knx_converted.xlsx"
	filenameTemplate = "batch_template.csv"

	contentTypeXML  = "application/xml"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

// Multipart field names.
const (
	fieldXMLFile      = "xml_file"
	fieldTemplateFile = "template_file"
	fieldSessionID    = "session_id"
	fieldNames        = "names"
)

// parseResponse is returned by POST /api/parse.
type parseResponse struct {
	SessionID string         `json:"session_id"`
	Filename  string         `json:"filename"`
	Summary   studio.Summary `json:"summary"`
	Entries   []naming.Entry `json:"entries"`
}

// exportRequest is the JSON body of the export endpoints.
type exportRequest struct {
	SessionID string         `json:"session_id"`
	Names     map[string]any `json:"names"`
}

// handleParse accepts an uploaded group address export and opens a session.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeFormError(w, err)
		return
	}

	file, header, err := r.FormFile(fieldXMLFile)
	if err != nil {
		writeBadRequest(w, "missing xml_file in form data")
		return
	}
	defer file.Close()

	doc, err := io.ReadAll(file)
	if err != nil {
		s.writeFormError(w, err)
		return
	}

	batch, err := s.studio.Parse(r.Context(), doc)
	if err != nil {
		s.writeStudioError(w, err)
		return
	}

	sess := session.New(header.Filename, doc, s.sessionTTL)
	if err := s.store.Create(r.Context(), sess); err != nil {
		s.logger.Error("creating session", "error", err)
		writeInternalError(w, "failed to store session")
		return
	}
	s.batches.Add(sess.ID, batch)

	writeJSON(w, http.StatusOK, parseResponse{
		SessionID: sess.ID,
		Filename:  sess.Filename,
		Summary:   batch.Summary,
		Entries:   batch.Entries,
	})
}

// handleExportXML returns the renamed document as a download.
func (s *Server) handleExportXML(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExportRequest(w, r)
	if !ok {
		return
	}
	sess, batch, ok := s.loadBatch(r.Context(), w, req.SessionID)
	if !ok {
		return
	}

	out, err := s.studio.ExportDocument(r.Context(), sess.Document, batch, overrideNames(req.Names))
	if err != nil {
		s.writeStudioError(w, err)
		return
	}
	writeAttachment(w, contentTypeXML, filenameXML, out)
}

// handleExportXLSX returns the mapping workbook as a download.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExportRequest(w, r)
	if !ok {
		return
	}
	_, batch, ok := s.loadBatch(r.Context(), w, req.SessionID)
	if !ok {
		return
	}

	out, err := s.studio.ExportWorkbook(r.Context(), batch, overrideNames(req.Names))
	if err != nil {
		s.writeStudioError(w, err)
		return
	}
	writeAttachment(w, contentTypeXLSX, filenameXLSX, out)
}

// handleExportTemplate returns the per-object CSV template as a download.
func (s *Server) handleExportTemplate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeExportRequest(w, r)
	if !ok {
		return
	}
	_, batch, ok := s.loadBatch(r.Context(), w, req.SessionID)
	if !ok {
		return
	}

	out, err := s.studio.ExportTemplate(batch, overrideNames(req.Names))
	if err != nil {
		s.writeStudioError(w, err)
		return
	}
	writeAttachment(w, contentTypeCSV, filenameTemplate, out)
}

// handleImportTemplate applies an uploaded CSV template to a session.
//
// The names field carries the client's current edits as a JSON object so
// the template is layered on top of them.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.writeFormError(w, err)
		return
	}

	_, batch, ok := s.loadBatch(r.Context(), w, r.FormValue(fieldSessionID))
	if !ok {
		return
	}

	var names map[string]any
	if raw := r.FormValue(fieldNames); raw != "" {
		if err := json.Unmarshal([]byte(raw), &names); err != nil {
			writeBadRequest(w, "names must be a JSON object")
			return
		}
	}

	file, _, err := r.FormFile(fieldTemplateFile)
	if err != nil {
		writeBadRequest(w, "missing template_file in form data")
		return
	}
	defer file.Close()

	imp, err := s.studio.ImportTemplate(batch, overrideNames(names), file)
	if err != nil {
		s.writeStudioError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, imp)
}

// handleDeleteSession discards a session and its cached batch.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.batches.Remove(id)
	if err := s.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, ErrCodeUnknownSession, "session not found")
			return
		}
		s.logger.Error("deleting session", "session_id", id, "error", err)
		writeInternalError(w, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadBatch looks up a live session and its resolved batch.
//
// The store is always consulted so expiry is enforced even for cached
// batches. On a cache miss the stored document is resolved again.
// It writes the error response itself and reports false on failure.
func (s *Server) loadBatch(ctx context.Context, w http.ResponseWriter, id string) (*session.Session, *studio.Batch, bool) {
	if id == "" {
		writeError(w, http.StatusBadRequest, ErrCodeSessionRequired, "session_id is required")
		return nil, nil, false
	}

	sess, err := s.store.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrSessionExpired):
			s.batches.Remove(id)
			writeError(w, http.StatusNotFound, ErrCodeUnknownSession, "unknown or expired session, upload the file again")
		default:
			s.logger.Error("loading session", "session_id", id, "error", err)
			writeInternalError(w, "failed to load session")
		}
		return nil, nil, false
	}

	if batch, ok := s.batches.Get(id); ok {
		return sess, batch, true
	}

	batch, err := s.studio.Restore(ctx, sess.Document)
	if err != nil {
		s.logger.Error("restoring session", "session_id", id, "error", err)
		writeInternalError(w, "failed to restore session")
		return nil, nil, false
	}
	s.batches.Add(id, batch)
	return sess, batch, true
}

// decodeExportRequest reads the JSON body shared by the export endpoints.
func decodeExportRequest(w http.ResponseWriter, r *http.Request) (exportRequest, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "request body too large")
			return req, false
		}
		writeBadRequest(w, "invalid JSON body")
		return req, false
	}
	return req, true
}

// overrideNames keeps the string values of a client name map. Anything
// else (null, numbers) is treated as "no override" for that address.
func overrideNames(raw map[string]any) map[string]string {
	names := make(map[string]string, len(raw))
	for addr, v := range raw {
		if name, ok := v.(string); ok {
			names[addr] = name
		}
	}
	return names
}

// writeFormError maps multipart parsing failures to a response.
func (s *Server) writeFormError(w http.ResponseWriter, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) || errors.Is(err, multipart.ErrMessageTooLarge) || errors.Is(err, etsimport.ErrFileTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, "upload exceeds maximum size")
		return
	}
	writeBadRequest(w, "invalid multipart form")
}

// writeStudioError maps studio errors to a response.
func (s *Server) writeStudioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, etsimport.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge, err.Error())
	case errors.Is(err, etsimport.ErrMalformedDocument),
		errors.Is(err, etsimport.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidDocument, err.Error())
	case errors.Is(err, naming.ErrInvalidTemplate):
		writeError(w, http.StatusBadRequest, ErrCodeInvalidTemplate, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, ErrCodeInternal, "request cancelled")
	default:
		s.logger.Error("studio operation failed", "error", err)
		writeInternalError(w, "internal server error")
	}
}
