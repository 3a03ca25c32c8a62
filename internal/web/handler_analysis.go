package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/web/flash"
)

const (
	csvFilename  = "audit_data.csv"
	xlsxFilename = "audit_data.xlsx"
	xlsxMIME     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.pageSession(w, r, "analysis", "Analysis Page")
	if !ok {
		return
	}
	mode := domain.ParseMode(r.URL.Query().Get("mode"))

	analysis, err := s.service.Analyze(r.Context(), sess.ID, mode)
	if err != nil {
		http.Error(w, "failed to analyze audit", http.StatusInternalServerError)
		s.logger.Error("analyze failed", "session_id", sess.ID, "error", err)
		return
	}

	data := map[string]any{
		"Title":    "Analysis Page",
		"Mode":     mode,
		"Modes":    []domain.Mode{domain.ModeLocation, domain.ModeZone},
		"Analysis": analysis,
	}
	s.renderPage(w, r, http.StatusOK, "analysis", sess, data, "pages/analysis.html")
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}
	if err := s.service.ClearAll(r.Context(), sess.ID); err != nil {
		http.Error(w, "failed to clear entries", http.StatusInternalServerError)
		s.logger.Error("clear all failed", "session_id", sess.ID, "error", err)
		return
	}
	redirectWithNotice(w, r, "/analysis", flash.Info("DataFrame cleared successfully!"))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	s.serveDownload(w, r, csvFilename, "text/csv; charset=utf-8", s.service.WriteCSV)
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	s.serveDownload(w, r, xlsxFilename, xlsxMIME, s.service.WriteXLSX)
}

// serveDownload buffers the whole export; nothing is sent until write succeeds.
func (s *Server) serveDownload(w http.ResponseWriter, r *http.Request, filename, contentType string,
	write func(ctx context.Context, sessionID string, w io.Writer) error) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := write(r.Context(), sess.ID, &buf); err != nil {
		http.Error(w, "failed to export", http.StatusInternalServerError)
		s.logger.Error("export failed", "session_id", sess.ID, "file", filename, "error", err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", contentType)
	h.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	h.Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Error("write export failed", "file", filename, "error", err)
	}
}
