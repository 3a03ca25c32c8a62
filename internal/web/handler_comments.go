package web

import (
	"net/http"

	"github.com/vbonduro/aclaudit/internal/export"
	"github.com/vbonduro/aclaudit/internal/web/flash"
	"github.com/vbonduro/aclaudit/internal/web/sessioncookie"
)

const commentsFilename = "audit_comments.docx"

func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.pageSession(w, r, "comments", "Comments and Sign-out Page")
	if !ok {
		return
	}
	comments, err := s.service.Comments(r.Context(), sess.ID)
	if err != nil {
		http.Error(w, "failed to list comments", http.StatusInternalServerError)
		s.logger.Error("list comments failed", "session_id", sess.ID, "error", err)
		return
	}

	data := map[string]any{
		"Title":    "Comments and Sign-out Page",
		"Comments": comments,
	}
	s.renderPage(w, r, http.StatusOK, "comments", sess, data, "pages/comments.html")
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := s.service.AddComment(r.Context(), sess.ID, r.FormValue("comment")); err != nil {
		http.Error(w, "failed to add comment", http.StatusInternalServerError)
		s.logger.Error("add comment failed", "session_id", sess.ID, "error", err)
		return
	}
	http.Redirect(w, r, "/comments", http.StatusSeeOther)
}

func (s *Server) handleExportComments(w http.ResponseWriter, r *http.Request) {
	s.serveDownload(w, r, commentsFilename, export.DocxContentType, s.service.WriteCommentsDocument)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.actionSession(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	if err := s.service.SignOut(r.Context(), sess.ID, r.FormValue("signature")); err != nil {
		http.Error(w, "failed to sign out", http.StatusInternalServerError)
		s.logger.Error("sign out failed", "session_id", sess.ID, "error", err)
		return
	}
	sessioncookie.Clear(w, r)
	redirectWithNotice(w, r, "/", flash.Success("Signed out successfully!"))
}
