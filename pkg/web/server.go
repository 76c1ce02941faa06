// Package web serves the desk as an HTML page with form actions, a JSON
// API under /api and change notifications on /ws.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aretw0/atcdesk/pkg/adapters/lifecycle"
	"github.com/aretw0/atcdesk/pkg/core"
	"github.com/aretw0/atcdesk/pkg/desk"
)

//go:embed templates/*.html
var templateFS embed.FS

// Choice is one dropdown entry.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Options configures a Server.
type Options struct {
	Addr        string
	Title       string
	Charts      []Choice
	Frequencies []Choice
	ChartsDir   string // served under /charts/ when set
	Logger      *slog.Logger
}

// Server hosts one desk for every connected browser.
type Server struct {
	desk   *desk.Desk
	page   *Page
	opts   Options
	tmpl   *template.Template
	hub    *hub
	logger *slog.Logger
	mux    *http.ServeMux
}

// NewServer builds a server for d, which must have been created with
// page.Bindings().
func NewServer(d *desk.Desk, page *Page, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Title == "" {
		opts.Title = "ATC Desk"
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	// Like a <select>, the chart selector shows its first option until told
	// otherwise.
	if len(opts.Charts) > 0 && page.SelectedChart() == "" {
		page.SetSelectedChart(opts.Charts[0].Value)
	}
	s := &Server{
		desk:   d,
		page:   page,
		opts:   opts,
		tmpl:   tmpl,
		hub:    newHub(opts.Logger),
		logger: opts.Logger,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /ws", s.hub.serveWS)

	s.mux.HandleFunc("POST /notes/{list}", s.handleNoteAdd)
	s.mux.HandleFunc("POST /notes/{list}/{pos}/delete", s.handleNoteDelete)
	s.mux.HandleFunc("POST /notes/{list}/{pos}/edit", s.handleNoteEdit)
	s.mux.HandleFunc("POST /notes/{list}/{pos}/save", s.handleNoteSave)
	s.mux.HandleFunc("POST /notes/{list}/{pos}/cancel", s.handleNoteCancel)
	s.mux.HandleFunc("POST /plans", s.handlePlanSave)
	s.mux.HandleFunc("POST /plans/fetch", s.handlePlanFetch)
	s.mux.HandleFunc("POST /plans/local", s.handlePlanLocal)
	s.mux.HandleFunc("POST /chart", s.handleChartSelect)
	s.mux.HandleFunc("POST /chart/{action}", s.handleChartAction)
	s.mux.HandleFunc("POST /frequency", s.handleFrequency)
	s.mux.HandleFunc("POST /copy/{what}", s.handleCopy)
	s.mux.HandleFunc("POST /logout", s.handleLogout)

	s.mux.HandleFunc("GET /api/state", s.apiState)
	s.mux.HandleFunc("GET /api/notes/{list}", s.apiNotes)
	s.mux.HandleFunc("POST /api/notes/{list}", s.apiNoteAdd)
	s.mux.HandleFunc("PUT /api/notes/{list}/{pos}", s.apiNoteUpdate)
	s.mux.HandleFunc("DELETE /api/notes/{list}/{pos}", s.apiNoteDelete)
	s.mux.HandleFunc("GET /api/plans", s.apiPlans)
	s.mux.HandleFunc("POST /api/plans", s.apiPlanSave)
	s.mux.HandleFunc("POST /api/plans/fetch", s.apiPlanFetch)
	s.mux.HandleFunc("GET /api/chart", s.apiChart)
	s.mux.HandleFunc("POST /api/chart", s.apiChartSelect)
	s.mux.HandleFunc("POST /api/chart/{action}", s.apiChartAction)
	s.mux.HandleFunc("GET /api/frequency", s.apiFrequency)
	s.mux.HandleFunc("PUT /api/frequency", s.apiFrequencySet)
	s.mux.HandleFunc("POST /api/copy/{what}", s.apiCopy)

	if s.opts.ChartsDir != "" {
		s.mux.Handle("GET /charts/", http.StripPrefix("/charts/", http.FileServer(http.Dir(s.opts.ChartsDir))))
	}
}

// Run loads the desk, follows store changes and serves until ctx ends.
func (s *Server) Run(ctx context.Context) error {
	if err := s.desk.Load(ctx); err != nil {
		s.logger.Warn("desk loaded with errors", "error", err)
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.desk.Watch(ctx)
		if errors.Is(err, core.ErrWatchUnsupported) {
			s.logger.Info("store is not watchable, live updates disabled")
			return nil
		}
		if err != nil {
			return err
		}
		return s.hub.run(ctx, lifecycle.NewSource(events))
	})
	g.Go(func() error {
		s.logger.Info("serving desk", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

type indexData struct {
	Title       string
	View        View
	Charts      []Choice
	Frequencies []Choice
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// The login page hands the token back as ?token=.
	if token := r.URL.Query().Get("token"); token != "" {
		if err := s.desk.Session.SetToken(r.Context(), token); err != nil {
			s.fail(w, err)
			return
		}
		s.back(w, r)
		return
	}
	if !s.checkSession(w, r) {
		return
	}
	data := indexData{
		Title:       s.opts.Title,
		View:        s.page.snapshot(true),
		Charts:      s.opts.Charts,
		Frequencies: s.opts.Frequencies,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.Error("render page", "error", err)
	}
}

// checkSession runs the session guard when one is configured and answers
// with a redirect to the login page on failure.
func (s *Server) checkSession(w http.ResponseWriter, r *http.Request) bool {
	err := s.desk.Session.Check(r.Context())
	switch {
	case err == nil, errors.Is(err, core.ErrNotConfigured):
		return true
	case errors.Is(err, core.ErrUnauthenticated):
		if url := s.page.takeRedirect(); url != "" {
			http.Redirect(w, r, url, http.StatusSeeOther)
			return false
		}
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return false
	}
	s.logger.Error("session check failed", "error", err)
	http.Error(w, "session check failed", http.StatusBadGateway)
	return false
}

// back returns the browser to the page after a form action.
func (s *Server) back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
