// Package web exposes the deck, history and statistics as a local JSON API.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/conorfennell/tarjeta/internal/deck"
	"github.com/conorfennell/tarjeta/internal/domain"
	"github.com/conorfennell/tarjeta/internal/history"
	"github.com/conorfennell/tarjeta/internal/stats"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	// mu serializes requests; the stores assume a single actor.
	mu      sync.Mutex
	deck    *deck.Store
	history *history.Log
	router  *http.ServeMux
}

// NewServer creates and configures a new server.
func NewServer(d *deck.Store, h *history.Log) *Server {
	s := &Server{
		deck:    d,
		history: h,
		router:  http.NewServeMux(),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	s.router.HandleFunc("/cards", s.handleCards())
	s.router.HandleFunc("/cards/{id}", s.handleCard())
	s.router.HandleFunc("/history", s.handleHistory())
	s.router.HandleFunc("/history/last-session", s.handleLastSession())
	s.router.HandleFunc("/stats", s.handleStats())
}

type cardRequest struct {
	Spanish string `json:"spanish"`
	English string `json:"english"`
}

type errorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

// handleCards lists the deck or adds a card.
func (s *Server) handleCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, s.deck.Cards())
		case http.MethodPost:
			var req cardRequest
			if !decode(w, r, &req) {
				return
			}
			cards, err := s.deck.Add(req.Spanish, req.English)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, cards[len(cards)-1])
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleCard edits or deletes one card. Unknown ids are silently ignored.
func (s *Server) handleCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		switch r.Method {
		case http.MethodPut:
			var req cardRequest
			if !decode(w, r, &req) {
				return
			}
			cards, err := s.deck.Edit(id, req.Spanish, req.English)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cards)
		case http.MethodDelete:
			cards, err := s.deck.Delete(id)
			if err != nil {
				writeError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, cards)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleHistory returns or clears the attempt log.
func (s *Server) handleHistory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, nonNil(s.history.Records()))
		case http.MethodDelete:
			if err := s.history.Clear(); err != nil {
				writeError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleLastSession returns the records since the last Study session began.
func (s *Server) handleLastSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		records, err := s.history.LastSessionRecords()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, nonNil(records))
	}
}

// handleStats renders the statistics report.
func (s *Server) handleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, stats.Compute(s.deck.Cards(), s.history.Records()))
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	var ve *deck.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: ve.Error(), Fields: ve.Fields})
		return
	}
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func nonNil(records []domain.SessionRecord) []domain.SessionRecord {
	if records == nil {
		return []domain.SessionRecord{}
	}
	return records
}
