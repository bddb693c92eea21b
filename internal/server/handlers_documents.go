package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/studygram/internal/ingestion"
	"github.com/jonathan/studygram/internal/pipeline"
	"github.com/jonathan/studygram/internal/types"
)

// multipartMemory is how much of an upload is buffered in memory before spilling to disk
const multipartMemory = 8 << 20

// handleAnalyze analyzes raw text without storing anything
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireUser(w, r); !ok {
		return
	}

	var req types.AnalyzeTextRequest
	if err := decodeJSON(w, r, s.maxUploadBytes, &req); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, r, validationError(err))
		return
	}

	start := time.Now()
	result, err := s.analyzer.Analyze(ingestion.PrepareText(ingestion.TypePlainText, req.Text))
	s.metrics.ObserveAnalysis("raw-text", time.Since(start), err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleUploadDocument accepts a multipart upload in field "file", with an
// optional "type" field holding a type tag or MIME type
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}

	if r.ContentLength > s.maxUploadBytes {
		s.fail(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(min(s.maxUploadBytes, multipartMemory)); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, &ErrPayloadTooLarge{Limit: s.maxUploadBytes})
			return
		}
		s.fail(w, r, &ErrValidation{Field: "file", Message: "expected a multipart/form-data upload"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.fail(w, r, &ErrValidation{Field: "file", Message: "is required"})
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	doc, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Input: pipeline.Input{
			Filename: header.Filename,
			Type:     uploadType(r.FormValue("type"), header.Filename, header.Header.Get("Content-Type")),
			Payload:  payload,
		},
		UserID:   userID,
		Analyzer: s.analyzer,
		Store:    s.service,
		Logger:   s.logger,
		Metrics:  s.metrics,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, doc)
}

// uploadType picks the declared type: the explicit form field, else the
// filename extension when it is recognised, else the part's Content-Type
func uploadType(formType, filename, partType string) string {
	if formType != "" {
		return formType
	}
	if _, err := ingestion.DetectDocumentType(filename); err == nil {
		return ""
	}
	return partType
}

// handleListDocuments lists the user's documents without their full text
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	docs, err := s.service.ListDocuments(r.Context(), userID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	for i := range docs {
		docs[i].FullText = ""
	}
	s.jsonResponse(w, http.StatusOK, docs)
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	doc, err := s.service.GetDocument(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, doc)
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := s.service.DeleteDocument(r.Context(), userID, id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDownloadSummary serves the summary as a text attachment named <filename>_summary.txt
func (s *Server) handleDownloadSummary(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requireUser(w, r)
	if !ok {
		return
	}
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	doc, err := s.service.GetDocument(r.Context(), userID, id)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{
		"filename": ingestion.SummaryFilename(doc.Filename),
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, doc.Analysis.Summary); err != nil {
		s.logger.Warn("failed to write summary download", zap.Error(err))
	}
}
