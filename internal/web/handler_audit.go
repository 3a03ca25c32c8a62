package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/vbonduro/aclaudit/internal/catalog"
	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/service"
	"github.com/vbonduro/aclaudit/internal/web/flash"
)

// checklist is one expandable target on the audit page.
type checklist struct {
	Mode      domain.Mode
	Target    string
	Questions []string
	Options   []string
}

func auditURL(mode domain.Mode) string {
	return "/audit?mode=" + url.QueryEscape(string(mode))
}

func (s *Server) handleAudit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.pageSession(w, r, "audit", "Audit Page")
	if !ok {
		return
	}
	mode := domain.ParseMode(r.URL.Query().Get("mode"))

	targets := catalog.Locations()
	if mode == domain.ModeZone {
		targets = catalog.AssignedZones(sess.Auditor)
	}
	options := catalog.AnswerOptions()
	lists := make([]checklist, 0, len(targets))
	for _, t := range targets {
		lists = append(lists, checklist{Mode: mode, Target: t, Questions: service.Questions(mode, t), Options: options})
	}

	data := map[string]any{
		"Title":      "Audit Page",
		"Mode":       mode,
		"Modes":      []domain.Mode{domain.ModeLocation, domain.ModeZone},
		"Checklists": lists,
	}
	s.renderPage(w, r, http.StatusOK, "audit", sess, data, "pages/audit.html", "partials/checklist.html")
}

func (s *Server) handleSaveDetails(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	details := domain.Details{
		ClientSite:   r.FormValue("client_site"),
		SiteLocation: r.FormValue("site_location"),
		Position:     r.FormValue("position"),
		ConductedOn:  r.FormValue("conducted_on"),
	}
	if err := s.service.SaveDetails(r.Context(), sess.ID, details); err != nil {
		http.Error(w, "failed to save details", http.StatusInternalServerError)
		s.logger.Error("save details failed", "session_id", sess.ID, "error", err)
		return
	}
	mode := domain.ParseMode(r.FormValue("mode"))
	redirectWithNotice(w, r, auditURL(mode), flash.Success("Audit details saved."))
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize)
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "failed to parse form", http.StatusBadRequest)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "failed to parse form", http.StatusBadRequest)
			return
		}
	}

	mode := domain.ParseMode(r.FormValue("mode"))
	target := r.FormValue("target")
	questions := service.Questions(mode, target)

	sub := service.Submission{
		Mode:    mode,
		Target:  target,
		Answers: make([]string, len(questions)),
		Comment: r.FormValue("comments"),
	}
	for i := range questions {
		sub.Answers[i] = r.FormValue(fmt.Sprintf("answer_%d", i))
		if sub.Answers[i] == "" {
			sub.Answers[i] = catalog.AnswerOptions()[0]
		}
	}

	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["photos"] {
			photo, err := s.readUploadedPhoto(fh)
			if errors.Is(err, errUnsupportedImage) {
				http.Error(w, "unsupported image format", http.StatusBadRequest)
				return
			}
			if err != nil {
				http.Error(w, "failed to read file", http.StatusInternalServerError)
				s.logger.Error("read upload failed", "session_id", sess.ID, "location", target, "error", err)
				return
			}
			sub.Photos = append(sub.Photos, photo)
		}
	}

	if _, err := s.service.Submit(r.Context(), sess.ID, sub); err != nil {
		http.Error(w, "failed to submit audit", http.StatusInternalServerError)
		s.logger.Error("submit failed", "session_id", sess.ID, "location", target, "error", err)
		return
	}
	redirectWithNotice(w, r, auditURL(mode), flash.Success("Data submitted successfully!"))
}

// readUploadedPhoto reads one uploaded file and checks it is an image.
func (s *Server) readUploadedPhoto(fh *multipart.FileHeader) (service.Photo, error) {
	file, err := fh.Open()
	if err != nil {
		return service.Photo{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer closeWithLog(file, "upload file", s.logger)

	data, err := io.ReadAll(file)
	if err != nil {
		return service.Photo{}, fmt.Errorf("failed to read upload: %w", err)
	}
	mimeType, ok := allowedImageMIME(data)
	if !ok {
		return service.Photo{}, errUnsupportedImage
	}
	return service.Photo{Data: data, MIMEType: mimeType}, nil
}

func (s *Server) handleClearLocation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	target := r.FormValue("target")
	if err := s.service.ClearLocation(r.Context(), sess.ID, target); err != nil {
		http.Error(w, "failed to clear entry", http.StatusInternalServerError)
		s.logger.Error("clear location failed", "session_id", sess.ID, "location", target, "error", err)
		return
	}
	mode := domain.ParseMode(r.FormValue("mode"))
	redirectWithNotice(w, r, auditURL(mode), flash.Info("Entry cleared successfully!"))
}
