package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/status-im/coin-ticker/board"
	"github.com/status-im/coin-ticker/filter"
	"github.com/status-im/coin-ticker/format"
	"github.com/status-im/coin-ticker/quotes"
)

type quotesResponse struct {
	State     string              `json:"state"`
	UpdatedAt time.Time           `json:"updated_at"`
	Version   uint64              `json:"version"`
	Total     int                 `json:"total"`
	Quotes    []quotes.AssetQuote `json:"quotes"`
}

type stateResponse struct {
	State string `json:"state"`
	Error string `json:"error,omitempty"`
}

type summaryResponse struct {
	State                   string  `json:"state"`
	UpdatedAt               string  `json:"updated_at"`
	Count                   int     `json:"count"`
	TotalMarketCap          float64 `json:"total_market_cap"`
	TotalMarketCapFormatted string  `json:"total_market_cap_formatted"`
}

// readySnapshot returns the published snapshot, or writes the loading/failed answer
func (s *Server) readySnapshot(w http.ResponseWriter, r *http.Request) (*quotes.Snapshot, bool) {
	switch s.board.State() {
	case board.StateFailed:
		resp := stateResponse{State: board.StateFailed.String()}
		if err := s.board.Err(); err != nil {
			resp.Error = err.Error()
		}
		s.sendJSONStatus(w, r, http.StatusBadGateway, resp)
		return nil, false
	case board.StateReady:
		if snap := s.board.Snapshot(); snap != nil {
			return snap, true
		}
	}

	w.Header().Set("Retry-After", "1")
	s.sendJSONStatus(w, r, http.StatusServiceUnavailable, stateResponse{State: board.StateLoading.String()})
	return nil, false
}

// quotesCacheKey identifies one rendered quote list. The snapshot version is part of the
// key, so a published board never serves a list rendered from an older one.
func quotesCacheKey(version uint64, query string, limit int) string {
	return fmt.Sprintf("quotes:v%d:l%d:%s", version, limit, strings.ToLower(query))
}

// handleQuotes serves the board, filtered by ?q= and truncated by ?limit=
func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w, r)
	if !ok {
		return
	}

	query := getParamTrimmed(r, "q")
	limit := getParamInt(r, "limit")
	key := quotesCacheKey(snap.Version, query, limit)

	if s.responses != nil {
		if body, found := s.responses.Get(key); found {
			s.sendJSONBytes(w, r, http.StatusOK, body)
			return
		}
	}

	list := filter.Filter(snap.Quotes, query)
	total := len(list)
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}

	body, err := json.Marshal(quotesResponse{
		State:     board.StateReady.String(),
		UpdatedAt: snap.UpdatedAt,
		Version:   snap.Version,
		Total:     total,
		Quotes:    list,
	})
	if err != nil {
		log.Printf("Error encoding quotes: %v", err)
		http.Error(w, "Error encoding response", http.StatusInternalServerError)
		return
	}

	if s.responses != nil {
		s.responses.Set(key, body, 0)
	}
	s.sendJSONBytes(w, r, http.StatusOK, body)
}

// handleQuote serves a single entry by id
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.readySnapshot(w, r); !ok {
		return
	}

	id := mux.Vars(r)["id"]
	quote, found := s.board.Quote(id)
	if !found {
		s.sendJSONStatus(w, r, http.StatusNotFound, map[string]string{"error": "quote not found: " + id})
		return
	}

	s.sendJSONResponse(w, r, quote)
}

// handleSummary serves the global market cap line shown above the table
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.readySnapshot(w, r)
	if !ok {
		return
	}

	total := format.TotalMarketCap(snap.Quotes)
	s.sendJSONResponse(w, r, summaryResponse{
		State:                   board.StateReady.String(),
		UpdatedAt:               snap.UpdatedAt.Format(time.RFC3339),
		Count:                   len(snap.Quotes),
		TotalMarketCap:          total,
		TotalMarketCapFormatted: format.LargeNumber(total),
	})
}
