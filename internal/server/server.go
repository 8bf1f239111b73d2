// Package server hosts the paint cycle over HTTP for the demo page.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-voronoi-paint/internal/config"
	"github.com/0x0FACED/go-voronoi-paint/pkg/logger"
	"github.com/0x0FACED/go-voronoi-paint/pkg/props"
)

const shutdownTimeout = 5 * time.Second

// Server routes paint, chart and page requests to one painter per element.
type Server struct {
	cfg      config.Config
	log      *logger.ZapLogger
	base     props.Map
	elements *registry
	router   chi.Router
}

// New validates cfg and builds the router. log receives both request logs
// and paint diagnostics; its buffer backs the page's log panel.
func New(cfg config.Config, log *logger.ZapLogger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base, err := cfg.StyleBag()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}

	s := &Server{
		cfg:      cfg,
		log:      log,
		base:     base,
		elements: newRegistry(log, cfg.Server.MaxElements),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{headerPaintError, headerPainter},
	}))

	r.Get("/", s.handlePage)
	r.Get("/paint/{element}", s.handlePaint)
	r.Get("/chart/{element}", s.handleChart)
	r.Get("/worklet", s.handleWorklet)
	r.Get("/logs", s.handleLogs)

	if dir := s.cfg.Server.StaticDir; dir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(dir))))
	}
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("[http] listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen on %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	s.log.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func requestLogger(log *logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Debug("[http] request",
				zap.String("id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("took", time.Since(start)))
		})
	}
}
