// Package server serves the site over HTTP with live theme toggling.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/matsen/scholarsite/internal/site"
	"github.com/matsen/scholarsite/internal/storage"
	"github.com/matsen/scholarsite/internal/theme"
)

// themeCookieMaxAge keeps the preference for a year.
const themeCookieMaxAge = 365 * 24 * 60 * 60

// Server renders publication pages on demand. Publications are re-read
// from disk per request, so an update is visible on the next reload.
type Server struct {
	siteTitle string
	pubsPath  string
	builder   *site.Builder
	logger    *slog.Logger
	metrics   *metrics
}

// New creates a server for the publications file at pubsPath.
func New(siteTitle, pubsPath string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		siteTitle: siteTitle,
		pubsPath:  pubsPath,
		builder:   site.NewBuilder(siteTitle, logger),
		logger:    logger,
		metrics:   newMetrics(),
	}
}

// Handler returns the route table for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /publications", s.handlePublications)
	mux.HandleFunc("GET /assets/publications.json", s.handlePublicationsJSON)
	mux.HandleFunc("POST /theme/toggle", s.handleThemeToggle)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.handler())
	return mux
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("serving site", "addr", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	pubs := s.builder.Load(s.pubsPath)
	cards := site.BuildCards(pubs, true)
	s.renderPage(w, r, "home", site.HomePage(s.siteTitle, cards, s.requestTheme(r)))
}

func (s *Server) handlePublications(w http.ResponseWriter, r *http.Request) {
	pubs := s.builder.Load(s.pubsPath)
	cards := site.BuildCards(pubs, false)
	s.renderPage(w, r, "publications", site.PublicationsPage(s.siteTitle, cards, s.requestTheme(r)))
}

func (s *Server) handlePublicationsJSON(w http.ResponseWriter, r *http.Request) {
	pubs, err := storage.ReadPublications(s.pubsPath)
	if err != nil || pubs == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	http.ServeFile(w, r, s.pubsPath)
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	store := &cookieStore{r: r, w: w}
	next, err := theme.Toggle(store)
	if err != nil {
		http.Error(w, "toggle failed", http.StatusInternalServerError)
		return
	}

	s.metrics.themeToggles.Inc()
	s.logger.Debug("theme toggled", "theme", next.String())

	back := r.Referer()
	if back == "" {
		back = "/"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderPage(w http.ResponseWriter, _ *http.Request, name string, page site.Page) {
	html, err := site.Render(page)
	if err != nil {
		s.metrics.renderErrors.Inc()
		s.logger.Error("rendering page failed", "page", name, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	s.metrics.pageRenders.WithLabelValues(name).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) requestTheme(r *http.Request) theme.Theme {
	return theme.Resolve(&cookieStore{r: r})
}

// cookieStore adapts a request/response pair to the theme.Store interface.
// Get reads the preference cookie; Set writes it back on the response.
type cookieStore struct {
	r *http.Request
	w http.ResponseWriter
}

func (c *cookieStore) Get() string {
	cookie, err := c.r.Cookie(theme.PreferenceKey)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func (c *cookieStore) Set(value string) error {
	if c.w == nil {
		return nil
	}
	http.SetCookie(c.w, &http.Cookie{
		Name:     theme.PreferenceKey,
		Value:    value,
		Path:     "/",
		MaxAge:   themeCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
