// Package ui serves the web interface: dataset upload, column selection,
// and the association results views.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gorelate/app"
	"gorelate/domain/assoc"
	"gorelate/domain/column"
	"gorelate/domain/core"
	"gorelate/internal/session"
)

//go:embed templates/*
var embeddedFiles embed.FS

const sessionCookie = "gorelate_session"

// App represents the UI application
type App struct {
	router    *chi.Mux
	store     *session.Store
	service   *app.AnalysisService
	templates *template.Template
	maxUpload int64
}

// Config holds UI application configuration
type Config struct {
	Port        string
	MaxFileSize int64
}

// NewApp creates a new UI application
func NewApp(store *session.Store, service *app.AnalysisService, config Config) (*App, error) {
	funcMap := template.FuncMap{
		"typeMeta": func(t column.ColumnType) column.DisplayMeta { return column.Display(t) },
		"bucketColor": func(b assoc.StrengthBucket) string {
			return bucketColors[b]
		},
		"strengthColor": func(v float64) string {
			return bucketColors[assoc.BucketFor(v)]
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"f3": func(v float64) string {
			return fmt.Sprintf("%.3f", v)
		},
		"mul": func(a, b float64) float64 { return a * b },
	}

	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	maxUpload := config.MaxFileSize
	if maxUpload <= 0 {
		maxUpload = 50 * 1024 * 1024
	}

	a := &App{
		router:    chi.NewRouter(),
		store:     store,
		service:   service,
		templates: templates,
		maxUpload: maxUpload,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// bucketColors is the heatmap palette keyed by strength bucket.
var bucketColors = map[assoc.StrengthBucket]string{
	assoc.BucketVeryWeak:   "#eef2f7",
	assoc.BucketWeak:       "#bfdbfe",
	assoc.BucketModerate:   "#60a5fa",
	assoc.BucketStrong:     "#2563eb",
	assoc.BucketVeryStrong: "#1e3a8a",
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/upload", a.handleUpload)
	a.router.Post("/analyze", a.handleAnalyze)
	a.router.Get("/results", a.handleResults)
	a.router.Get("/details", a.handleDetails)

	// Polled by the results page while an analysis is in flight.
	a.router.Get("/api/progress", a.handleProgress)

	// Persisted run history, empty without a configured database.
	a.router.Get("/api/runs", a.handleRuns)
}

// Router returns the HTTP handler, mainly for tests.
func (a *App) Router() http.Handler {
	return a.router
}

// Run starts the UI server on the configured port.
func (a *App) Run(port string) error {
	return http.ListenAndServe(":"+port, a.router)
}

// sessionFor returns the session for the request's cookie, creating one (and
// setting the cookie) when none exists.
func (a *App) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	var id core.SessionID
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		id = core.SessionID(cookie.Value)
	}
	sess := a.store.GetOrCreate(id)
	if sess.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID.String(),
			Path:     "/",
			HttpOnly: true,
		})
	}
	return sess
}

func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template error: %v", err), http.StatusInternalServerError)
	}
}
