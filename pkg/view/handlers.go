package view

import (
	"encoding/json"
	"errors"
	"net/http"
)

type clickResponse struct {
	ClickId string `json:"clickId"`
	*Snapshot
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.display.Snapshot(true)); err != nil {
		s.logger.Sugar().Errorw("Failed to render page", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, s.display.Snapshot(true))
}

func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := ButtonId(r.PathValue("name"))
	clickId, err := s.binder.Click(id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownButton):
			http.Error(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, ErrButtonDisabled):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, ErrPageNotLoaded):
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	s.writeJSON(w, &clickResponse{ClickId: clickId, Snapshot: s.display.Snapshot(true)})
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.events == nil {
		http.Error(w, "Event journal not configured", http.StatusNotFound)
		return
	}

	events, err := s.events.ListEvents(r.Context())
	if err != nil {
		s.logger.Sugar().Errorw("Failed to list journaled events", "error", err)
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, events)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Sugar().Errorw("Failed to encode response", "error", err)
	}
}
