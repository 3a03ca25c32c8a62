package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/vbonduro/aclaudit/internal/auth"
	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/service"
	"github.com/vbonduro/aclaudit/internal/web/sessioncookie"
)

var instructions = []string{
	"Navigate to the Audit Page to conduct audits for your assigned locations.",
	"Review the analysis and download the CSV file on the Analysis Page.",
	"Add comments and sign out on the Comments and Sign-out Page.",
	"Use the navigation sidebar to access different pages.",
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	id, _ := sessioncookie.Read(r)
	sess, err := s.service.Session(r.Context(), id)
	if err != nil && !errors.Is(err, service.ErrNoSession) {
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		s.logger.Error("load session failed", "error", err)
		return
	}
	s.renderHome(w, r, sess, "", "")
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request, sess *domain.Session, name, loginErr string) {
	data := map[string]any{
		"Title":        "Airways Catering Limited Audit App",
		"Instructions": instructions,
		"Name":         name,
		"LoginError":   loginErr,
	}
	s.renderPage(w, r, http.StatusOK, "home", sess, data, "pages/home.html")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")

	sess, err := s.service.Login(r.Context(), name, r.FormValue("password"))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.renderHome(w, r, nil, strings.TrimSpace(name), auth.InvalidCredentialsMessage)
		return
	}
	if err != nil {
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		s.logger.Error("login failed", "error", err)
		return
	}

	if prior, ok := sessioncookie.Read(r); ok {
		if err := s.service.SignOut(r.Context(), prior, ""); err != nil && !errors.Is(err, service.ErrNoSession) {
			s.logger.Error("sign out replaced session failed", "session_id", prior, "error", err)
		}
	}
	sessioncookie.Write(w, r, sess.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
