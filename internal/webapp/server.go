// Package webapp is the browser-facing half of the attendance system: it
// renders the login, employee dashboard, admin dashboard, and registration
// pages, and forwards every user action to the attendance backend. No business
// rule is evaluated here; the backend's acceptance or rejection of each call
// is what the pages surface.
package webapp

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	"github.com/bioattend/attendweb/internal/api"
	"github.com/bioattend/attendweb/internal/middleware"
	"github.com/bioattend/attendweb/internal/session"
)

type Config struct {
	Addr          string
	APIBaseURL    string
	APITimeout    time.Duration
	SessionSecret string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	MaxUploadSize int64
}

//go:embed templates/login.html templates/register.html templates/dashboard.html templates/admin.html assets/app.css
var templatesFS embed.FS

type server struct {
	api           *api.Client
	sessions      session.Store
	logger        *slog.Logger
	maxUploadSize int64

	loginTmpl     *template.Template
	registerTmpl  *template.Template
	dashboardTmpl *template.Template
	adminTmpl     *template.Template
}

func newServer(cfg Config, logger *slog.Logger) *server {
	return &server{
		api:           api.NewClient(strings.TrimRight(cfg.APIBaseURL, "/"), cfg.APITimeout),
		sessions:      session.NewCookieStore(cfg.SessionSecret),
		logger:        logger,
		maxUploadSize: cfg.MaxUploadSize,
		loginTmpl:     template.Must(template.ParseFS(templatesFS, "templates/login.html")),
		registerTmpl:  template.Must(template.ParseFS(templatesFS, "templates/register.html")),
		dashboardTmpl: template.Must(template.ParseFS(templatesFS, "templates/dashboard.html")),
		adminTmpl:     template.Must(template.ParseFS(templatesFS, "templates/admin.html")),
	}
}

func (s *server) handler() http.Handler {
	r := chi.NewRouter()

	r.Use(httplog.RequestLogger(s.logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: logSchema,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", s.loginPage)
	r.Post("/login", s.login)
	r.Post("/logout", s.logout)
	r.Get("/assets/app.css", s.appCSSFile)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Route("/dashboard", func(r chi.Router) {
			r.Get("/", s.dashboardPage)
			r.Post("/punch/{direction}", s.punchProxy)
			r.Get("/export/{type}", s.exportMyLogsProxy)
			r.Post("/profile", s.updateProfileProxy)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/register", s.registerPage)
		r.Post("/register", s.registerProxy)
		r.Route("/admin", func(r chi.Router) {
			r.Get("/", s.adminPage)
			r.Post("/employees/{empID}/delete", s.deleteEmployeeProxy)
			r.Get("/export/{type}", s.exportAllLogsProxy)
			r.Post("/upload", s.uploadAttendanceProxy)
		})
	})

	csp := strings.Join([]string{
		"default-src 'self'",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"script-src 'self' 'unsafe-inline'",
		"connect-src 'self'",
		"frame-ancestors 'none'",
	}, "; ")

	return middleware.Chain(r, middleware.SecurityHeaders(csp))
}

var logSchema = httplog.SchemaECS.Concise(true)

func Run(ctx context.Context, cfg Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logSchema.ReplaceAttr,
	})).With(
		slog.String("app", "attendweb"),
	)
	s := newServer(cfg, logger)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web client listening", slog.String("addr", cfg.Addr), slog.String("api", cfg.APIBaseURL))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

type contextKey struct{}

var sessionKey contextKey

// requireSession gates employee pages: any readable session passes, anything
// else goes back to the login page.
func (s *server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Read(r)
		if err != nil || sess.Token == "" {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

// requireAdmin gates the admin dashboard and registration: the session must
// exist and carry the admin role claim.
func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Read(r)
		if err != nil || sess.Token == "" || !sess.IsAdmin() {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func sessionFrom(r *http.Request) *session.Session {
	sess, _ := r.Context().Value(sessionKey).(*session.Session)
	return sess
}

func (s *server) render(w http.ResponseWriter, tmpl *template.Template, data pageData) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		http.Error(w, "template render failed", http.StatusInternalServerError)
		s.logger.Error("template render failed", slog.String("template", tmpl.Name()), slog.Any("error", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *server) appCSSFile(w http.ResponseWriter, r *http.Request) {
	css, err := templatesFS.ReadFile("assets/app.css")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(css)
}

// failureMessage maps an upstream error to banner text: the backend's own
// message when it sent one, the generic text for other rejections, and the
// network text when the request never completed.
func failureMessage(err error, generic, network string) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Message != "" {
			return statusErr.Message
		}
		return generic
	}
	return network
}
