package web

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/vbonduro/aclaudit/internal/auth"
	"github.com/vbonduro/aclaudit/internal/domain"
	"github.com/vbonduro/aclaudit/internal/service"
	"github.com/vbonduro/aclaudit/internal/web/flash"
	"github.com/vbonduro/aclaudit/internal/web/sessioncookie"
)

// NoSessionWarning is shown on pages that need a logged-in auditor.
const NoSessionWarning = "Please authenticate first on the Home page."

type navItem struct {
	Key   string
	Label string
	Path  string
}

var navItems = []navItem{
	{Key: "home", Label: "Home", Path: "/"},
	{Key: "audit", Label: "Audit", Path: "/audit"},
	{Key: "analysis", Label: "Analysis", Path: "/analysis"},
	{Key: "comments", Label: "Comments and Sign-out", Path: "/comments"},
}

type Server struct {
	service   *service.AuditService
	templates fs.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	logger    *slog.Logger
}

func NewServer(svc *service.AuditService, tmpl fs.FS, logger *slog.Logger) *Server {
	s := &Server{
		service:   svc,
		templates: tmpl,
		mux:       http.NewServeMux(),
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"pct": func(f float64) string { return fmt.Sprintf("%.1f", f) },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("GET /audit", s.handleAudit)
	s.mux.HandleFunc("POST /audit/details", s.handleSaveDetails)
	s.mux.HandleFunc("POST /audit/submit", s.handleSubmit)
	s.mux.HandleFunc("POST /audit/clear", s.handleClearLocation)
	s.mux.HandleFunc("GET /photos/{id}", s.handleGetPhoto)
	s.mux.HandleFunc("GET /analysis", s.handleAnalysis)
	s.mux.HandleFunc("POST /analysis/clear", s.handleClearAll)
	s.mux.HandleFunc("GET /analysis/audit_data.csv", s.handleExportCSV)
	s.mux.HandleFunc("GET /analysis/audit_data.xlsx", s.handleExportXLSX)
	s.mux.HandleFunc("GET /comments", s.handleComments)
	s.mux.HandleFunc("POST /comments", s.handleAddComment)
	s.mux.HandleFunc("GET /comments/audit_comments.docx", s.handleExportComments)
	s.mux.HandleFunc("POST /signout", s.handleSignOut)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"style-src 'self' 'unsafe-inline'; "+
				"img-src 'self' data:; "+
				"form-action 'self'")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses base.html plus files and executes the "base" template.
// data gains the navigation, the pending flash notice and the auditor name.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, nav string, sess *domain.Session, data map[string]any, files ...string) {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, append([]string{"base.html"}, files...)...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		s.logger.Error("parse templates failed", "files", files, "error", err)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	data["Nav"] = navItems
	data["ActiveNav"] = nav
	if notice, ok := flash.ReadAndClear(w, r); ok {
		data["Flash"] = notice
	}
	if sess != nil {
		data["Session"] = sess
		data["Auditor"] = auth.DisplayName(sess.Auditor)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("render page failed", "files", files, "error", err)
	}
}

// pageSession resolves the session cookie for GET pages. A missing session
// renders the warning page under title and reports false.
func (s *Server) pageSession(w http.ResponseWriter, r *http.Request, nav, title string) (*domain.Session, bool) {
	id, _ := sessioncookie.Read(r)
	sess, err := s.service.Session(r.Context(), id)
	switch {
	case err == nil:
		return sess, true
	case errors.Is(err, service.ErrNoSession):
		s.renderPage(w, r, http.StatusOK, nav, nil,
			map[string]any{"Title": title, "Warning": flash.Warning(NoSessionWarning)},
			"pages/warning.html")
	default:
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		s.logger.Error("load session failed", "error", err)
	}
	return nil, false
}

// actionSession is pageSession for POSTs and downloads: a missing session is
// answered with 401.
func (s *Server) actionSession(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	id, _ := sessioncookie.Read(r)
	sess, err := s.service.Session(r.Context(), id)
	switch {
	case err == nil:
		return sess, true
	case errors.Is(err, service.ErrNoSession):
		http.Error(w, NoSessionWarning, http.StatusUnauthorized)
	default:
		http.Error(w, "failed to load session", http.StatusInternalServerError)
		s.logger.Error("load session failed", "error", err)
	}
	return nil, false
}

// redirectWithNotice stores notice and redirects with 303 See Other.
func redirectWithNotice(w http.ResponseWriter, r *http.Request, to string, notice flash.Notice) {
	flash.Write(w, r, notice)
	http.Redirect(w, r, to, http.StatusSeeOther)
}
