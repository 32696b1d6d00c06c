package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/sankey/pkg/httputil"
	"github.com/matzehuels/sankey/pkg/pipeline"
	"github.com/matzehuels/sankey/pkg/watch"
)

// Config holds server configuration.
type Config struct {
	Addr        string           // listen address, e.g. "localhost:8750"
	Options     pipeline.Options // base render options; Source names the flow file
	Runner      *pipeline.Runner // nil means an uncached runner
	CORSOrigins []string         // nil allows localhost only
	Watch       bool             // broadcast reloads when the flow file changes
	Logger      *log.Logger
}

// Server previews one flow file over HTTP.
type Server struct {
	cfg        Config
	runner     *pipeline.Runner
	logger     *log.Logger
	hub        *Hub
	router     chi.Router
	watcher    *watch.Watcher
	httpServer *http.Server
}

// New creates a server. The flow file is not read until the first request.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		hub:    NewHub(logger),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	origins := s.cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.hub.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		r.Get("/layout", s.handleLayout)
		r.Post("/layout", s.handleLayout)
	})

	for _, format := range []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatDOT} {
		r.With(middleware.Timeout(60*time.Second)).Get("/plot."+format, s.handlePlot(format))
	}
	return r
}

// Handler returns the HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.router }

// Hub returns the live-reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Reload tells connected browsers to refetch the plot.
func (s *Server) Reload() {
	n := s.hub.Broadcast(Message{Type: MessageReload, Source: s.cfg.Options.Source})
	s.logger.Info("reload", "clients", n)
}

// Start watches the flow file if configured and serves until Shutdown.
func (s *Server) Start() error {
	if s.cfg.Watch && httputil.IsURL(s.cfg.Options.Source) {
		s.logger.Warn("remote sources are not watched", "source", s.cfg.Options.Source)
	} else if s.cfg.Watch && s.cfg.Options.Source != "" {
		w, err := watch.New(s.cfg.Options.Source,
			watch.WithOnChange(s.Reload),
			watch.WithOnError(func(err error) { s.logger.Warn("watch", "error", err) }),
		)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		s.watcher = w
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("listening", "addr", s.cfg.Addr, "source", s.cfg.Options.Source)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the watcher, closes websocket clients and drains the
// HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
