package api

import (
	"net/http"

	"github.com/status-im/coin-ticker/cache"
)

// handleHealth responds with 200 OK and the state of each component
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := map[string]string{
		"board":   s.board.State().String(),
		"markets": "unknown",
	}

	if s.markets != nil && s.markets.Healthy() {
		services["markets"] = "up"
	}

	resp := map[string]interface{}{
		"status":   "ok",
		"services": services,
	}
	if refresher, ok := s.board.(interface{ RefreshSkipped() uint64 }); ok {
		resp["refresh_skipped"] = refresher.RefreshSkipped()
	}
	if responses, ok := s.responses.(interface{ Stats() cache.Stats }); ok {
		resp["response_cache"] = responses.Stats()
	}

	s.sendJSONResponse(w, r, resp)
}
