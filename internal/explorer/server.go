// Package explorer serves the atlas as an interactive web page. View changes
// are pushed to browsers over a websocket.
package explorer

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/asset-atlas/internal/atlas"
	"github.com/ziadkadry99/asset-atlas/internal/audit"
	"github.com/ziadkadry99/asset-atlas/internal/metrics"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)

	// Journal, when set, records view changes and picks and is served
	// under /api/audit.
	Journal *audit.Journal
}

// Server is the web explorer.
type Server struct {
	cfg        Config
	atlas      *atlas.Atlas
	metrics    *metrics.Registry
	hub        *Hub
	router     chi.Router
	httpServer *http.Server
	cancel     []func()
}

// New creates a server over a. A nil registry gets a fresh one.
func New(cfg Config, a *atlas.Atlas, reg *metrics.Registry) *Server {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	reg.SetGraphSize(a.Catalog().Len(), a.Entities().EdgeCount(), a.Areas().EdgeCount())

	s := &Server{
		cfg:     cfg,
		atlas:   a,
		metrics: reg,
		hub:     NewHub(a, reg, cfg.Journal),
	}
	s.cancel = append(s.cancel,
		a.Subscribe(reg),
		a.Subscribe(s.hub),
	)
	if cfg.Journal != nil {
		s.cancel = append(s.cancel, a.Subscribe(cfg.Journal))
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.metrics.Middleware)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", s.metrics.Handler())

	r.Get("/", s.serveIndex)
	// The websocket must not sit behind a timeout.
	r.Get("/ws/view", s.hub.ServeWS)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/api/menu", s.handleMenu)
		r.Get("/api/view", s.handleCurrentView)
		r.Post("/api/view", s.handleSelectView)
		r.Get("/api/frame", s.handleFrame)
		r.Post("/api/pick", s.handlePick)
		r.Get("/api/search", s.handleSearch)
		if s.cfg.Journal != nil {
			audit.RegisterRoutes(r, s.cfg.Journal.Store())
		}
	})

	return r
}

// Router returns the chi router.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("explorer: listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and detaches it from the atlas.
func (s *Server) Shutdown(ctx context.Context) error {
	for _, c := range s.cancel {
		c()
	}
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
