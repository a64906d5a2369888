package server

import (
	"fmt"
	"net/http"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/export"
)

// handleExport streams the caller's todos as an xlsx download, ordered
// like the list view.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	todos, err := s.store.ListTodos(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list todos", err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(user.Username)))

	if err := export.Write(w, todos); err != nil {
		s.log.Error("write export", "error", err)
	}
}
