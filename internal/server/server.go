// Package server serves rendered planner pages for preview in a browser.
//
// Pages are rendered with links of the form /dest/{key}; the server resolves
// them to /pages/{n}, so navigation can be tried out without generating a
// PDF.
//
//	GET  /               page list and outline
//	GET  /pages/{n}      page n as SVG
//	GET  /dest/{key}     redirect to the page of a destination key
//	GET  /manifest.json  build manifest
//	POST /rebuild        rebuild from the configuration
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/planbook/pkg/observability"
	"github.com/matzehuels/planbook/pkg/pipeline"
)

// LinkPrefix is the href prefix of page links served by the preview.
const LinkPrefix = "/dest/"

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server renders a planner once and serves the result. [Server.Rebuild]
// replaces the result atomically.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger

	mu     sync.RWMutex
	result *pipeline.Result
	built  time.Time

	router chi.Router
}

// New creates a server. The options' link prefix and formats are overridden:
// the preview needs SVG pages and the manifest.
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	opts.LinkPrefix = LinkPrefix
	opts.Formats = []string{pipeline.FormatSVG, pipeline.FormatJSON}
	s := &Server{runner: runner, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observe)

	r.Get("/", s.handleIndex)
	r.Get("/pages/{n}", s.handlePage)
	r.Get("/dest/*", s.handleDest)
	r.Get("/manifest.json", s.handleManifest)
	r.Post("/rebuild", s.handleRebuild)
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Rebuild runs the pipeline and swaps in the new result. On failure the
// previous result keeps being served.
func (s *Server) Rebuild(ctx context.Context) error {
	res, err := s.runner.Execute(ctx, s.opts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.result = res
	s.built = time.Now()
	s.mu.Unlock()
	s.logger.Info("preview ready", "pages", len(res.Pages), "cached", res.CacheInfo.PageHits)
	return nil
}

// Result returns the current build, or nil before the first one.
func (s *Server) Result() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	s.logger.Info("serving preview", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// observe reports requests to the registered HTTP hooks.
func observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}
