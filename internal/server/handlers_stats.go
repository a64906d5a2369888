package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/stats"
)

// handleDashboard renders the aggregate view: totals, per-category and
// per-priority counts, the 7-day completion histogram and the kanban
// columns.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	todos, err := s.store.ListTodos(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list todos", err)
		return
	}

	s.render(w, r, "dashboard.html", stats.Compute(todos, time.Now()))
}

// handleAPIStats serves the chart payload.
func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	todos, err := s.store.ListTodos(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list todos", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats.ComputeAPI(todos)); err != nil {
		s.log.Error("encode stats", "error", err)
	}
}
