package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/conorfennell/tarjeta/internal/deck"
	"github.com/conorfennell/tarjeta/internal/domain"
	"github.com/conorfennell/tarjeta/internal/history"
	"github.com/conorfennell/tarjeta/internal/stats"
	"github.com/conorfennell/tarjeta/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *deck.Store, *history.Log) {
	t.Helper()
	kv := storage.NewMemory()
	d, err := deck.Open(kv)
	if err != nil {
		t.Fatalf("deck.Open() returned an unexpected error: %v", err)
	}
	h, err := history.Open(kv)
	if err != nil {
		t.Fatalf("history.Open() returned an unexpected error: %v", err)
	}
	return NewServer(d, h), d, h
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestCards(t *testing.T) {
	s, d, _ := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/cards", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		var cards []domain.Card
		if err := json.NewDecoder(rec.Body).Decode(&cards); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(cards) != 25 {
			t.Errorf("Expected the seed deck, got %d cards", len(cards))
		}
	})

	t.Run("add", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/cards", `{"spanish":" el sol ","english":"the sun"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
		}
		var card domain.Card
		json.NewDecoder(rec.Body).Decode(&card)
		if card.ID == "" || card.Spanish != "el sol" {
			t.Errorf("Unexpected card: %+v", card)
		}
		if len(d.Cards()) != 26 {
			t.Errorf("Expected 26 cards, got %d", len(d.Cards()))
		}
	})

	t.Run("add invalid", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/cards", `{"spanish":"","english":"x"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
		var resp errorResponse
		json.NewDecoder(rec.Body).Decode(&resp)
		if len(resp.Fields) != 1 || resp.Fields[0] != "spanish" {
			t.Errorf("Expected the spanish field to be reported, got %+v", resp)
		}
	})

	t.Run("bad json", func(t *testing.T) {
		if rec := do(t, s, http.MethodPost, "/cards", `{`); rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("edit", func(t *testing.T) {
		rec := do(t, s, http.MethodPut, "/cards/2", `{"spanish":"la casa","english":"the home"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if c, _ := d.Find("2"); c.English != "the home" {
			t.Errorf("Expected card to be edited, got %+v", c)
		}
	})

	t.Run("edit unknown id", func(t *testing.T) {
		if rec := do(t, s, http.MethodPut, "/cards/nope", `{"spanish":"a","english":"b"}`); rec.Code != http.StatusOK {
			t.Errorf("Expected a silent no-op, got %d", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if rec := do(t, s, http.MethodDelete, "/cards/1", ""); rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}
		if _, ok := d.Find("1"); ok {
			t.Error("Expected card 1 to be deleted")
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		if rec := do(t, s, http.MethodPatch, "/cards", ""); rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", rec.Code)
		}
	})
}

func TestHistoryAndStats(t *testing.T) {
	s, _, h := newTestServer(t)
	h.MarkSessionStart()
	for _, r := range []domain.Result{domain.Correct, domain.Correct, domain.Incorrect, domain.Incorrect, domain.Correct} {
		h.AddRecord("1", r)
	}

	rec := do(t, s, http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var report stats.Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if report.Total != 5 || report.Correct != 3 || report.Incorrect != 2 || report.Accuracy != "60.0" {
		t.Errorf("Unexpected report: %+v", report)
	}
	if len(report.Hardest) != 1 || report.Hardest[0].CardID != "1" {
		t.Errorf("Expected card 1 among the hardest, got %+v", report.Hardest)
	}

	rec = do(t, s, http.MethodGet, "/history/last-session", "")
	var last []domain.SessionRecord
	json.NewDecoder(rec.Body).Decode(&last)
	if len(last) != 5 {
		t.Errorf("Expected 5 last-session records, got %d", len(last))
	}

	if rec := do(t, s, http.MethodDelete, "/history", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	rec = do(t, s, http.MethodGet, "/history", "")
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Errorf("Expected an empty history, got %s", body)
	}
}
