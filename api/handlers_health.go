package api

import (
	"net/http"
)

// handleHealth responds with 200 OK to indicate the service is running
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	if s.cacheStats != nil {
		status["cache"] = s.cacheStats.Stats()
	}

	s.sendJSONResponse(w, status)
}
