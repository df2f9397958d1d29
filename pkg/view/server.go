package view

import (
	"context"
	"fmt"
	"net/http"

	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

// IEventLister reads back journaled contract events
type IEventLister interface {
	ListEvents(ctx context.Context) ([]*types.ContractEvent, error)
}

/*
Server exposes the page over HTTP.

	GET  /                  HTML rendering of elements and buttons
	GET  /view              JSON snapshot, pending alerts are handed out once
	POST /buttons/{name}    run the click handler, respond with the snapshot after it completes
	GET  /events            contract events recorded in the journal
*/
type Server struct {
	display    *Display
	binder     *Binder
	events     IEventLister
	logger     *zap.Logger
	httpServer *http.Server
}

func NewServer(display *Display, binder *Binder, events IEventLister, port int, logger *zap.Logger) *Server {
	s := &Server{
		display: display,
		binder:  binder,
		events:  events,
		logger:  logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", s.handleIndex)
	mux.HandleFunc("/view", s.handleView)
	mux.HandleFunc("/buttons/{name}", s.handleClick)
	mux.HandleFunc("/events", s.handleEvents)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	go func() {
		s.logger.Sugar().Infow("Starting HTTP server", "port", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			s.logger.Sugar().Errorw("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// GetHandler returns the HTTP handler (for testing)
func (s *Server) GetHandler() http.Handler {
	return s.httpServer.Handler
}
