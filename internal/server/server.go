// Package server is the pensum HTTP backend: question answering over the
// index plus Canvas passthrough endpoints.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mskaar/pensum/internal/logger"
	"github.com/mskaar/pensum/internal/model"
)

// Server wraps the HTTP server and its middleware chain.
type Server struct {
	httpServer *http.Server
	handler    *Handler
	middleware *Middleware
	log        *logger.Logger
}

// New creates the server around a handler.
func New(cfg model.ServerConfig, handler *Handler, log *logger.Logger) *Server {
	mw := NewMiddleware(cfg.AllowedOrigin, log)

	return &Server{
		handler:    handler,
		middleware: mw,
		log:        log,
		httpServer: &http.Server{
			Addr:         cfg.Address(),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Start registers routes and begins serving in a background goroutine.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /qa", s.handler.QA)
	mux.HandleFunc("GET /health", s.handler.Health)
	mux.HandleFunc("GET /context", s.handler.Context)
	mux.HandleFunc("POST /refresh-embeddings", s.handler.Refresh)
	mux.HandleFunc("GET /debug/docs", s.handler.DebugDocs)
	mux.HandleFunc("GET /proxy/pdf/{courseID}/{fileID}", s.handler.ProxyPDF)

	handler := s.middleware.Recovery(mux)
	handler = s.middleware.Logging(handler)
	handler = s.middleware.CORS(handler)

	s.httpServer.Handler = handler
	s.log.Infof("HTTP server listening on %s", s.httpServer.Addr)

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Fatal("HTTP server error", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server shutdown complete")
	return nil
}
