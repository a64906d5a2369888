package server

import (
	"encoding/json"
	"net/http"
)

// handleSummarize returns a best-effort summary of the posted text.
// The summarizer never fails; a broken request body is the only error
// path.
func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	summary := s.summarizer.Summarize(r.Context(), payload.Text)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"summary": summary}); err != nil {
		s.log.Error("encode summary", "error", err)
	}
}
