// Package server wires the HTTP surface: routing, session middleware,
// template rendering and the request handlers.
package server

import (
	"net/http"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/config"
	"github.com/eleven-am/tasknest/internal/logger"
	"github.com/eleven-am/tasknest/internal/store"
	"github.com/eleven-am/tasknest/internal/summarize"
)

// Server holds every dependency the handlers need.
type Server struct {
	cfg        *config.Config
	store      *store.Store
	sessions   *auth.Sessions
	summarizer *summarize.Summarizer
	uploads    *UploadDir
	log        logger.Logger
}

// New builds a server over an opened store.
func New(cfg *config.Config, st *store.Store) (*Server, error) {
	uploads, err := NewUploadDir(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	return &Server{
		cfg:        cfg,
		store:      st,
		sessions:   auth.NewSessions(st, cfg.SessionSecret),
		summarizer: summarize.New(cfg.OpenAIAPIKey),
		uploads:    uploads,
		log:        logger.HTTP(),
	}, nil
}

// ListenAndServe runs the HTTP server until it fails.
func (s *Server) ListenAndServe() error {
	s.log.Info("listening", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Router())
}
