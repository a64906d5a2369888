package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/store"
)

// handleAddSubtask creates a checklist item under the caller's todo.
func (s *Server) handleAddSubtask(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.pageOwnedTodo(w, r)
	if !ok {
		return
	}

	title := strings.TrimSpace(r.FormValue("subtask_title"))
	if _, err := s.store.CreateSubtask(r.Context(), todo.Sno, title); err != nil {
		s.internalError(w, "add subtask", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleToggleSubtask flips the done flag. Ownership resolves through
// the parent todo; a non-owner gets a bare 403.
func (s *Server) handleToggleSubtask(w http.ResponseWriter, r *http.Request) {
	subtask, ok := s.subtaskFromPath(w, r)
	if !ok {
		return
	}

	if owned, ok := s.subtaskOwned(w, r, subtask); !ok {
		return
	} else if !owned {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err := s.store.ToggleSubtaskDone(r.Context(), subtask.ID); err != nil {
		s.internalError(w, "toggle subtask", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDeleteSubtask removes a subtask. A non-owner gets a silent
// redirect home, unlike toggle's 403; both behaviors are intentional.
func (s *Server) handleDeleteSubtask(w http.ResponseWriter, r *http.Request) {
	subtask, ok := s.subtaskFromPath(w, r)
	if !ok {
		return
	}

	if owned, ok := s.subtaskOwned(w, r, subtask); !ok {
		return
	} else if !owned {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if err := s.store.DeleteSubtask(r.Context(), subtask.ID); err != nil {
		s.internalError(w, "delete subtask", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// subtaskFromPath resolves {id}; missing subtasks 404.
func (s *Server) subtaskFromPath(w http.ResponseWriter, r *http.Request) (*store.Subtask, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil, false
	}

	subtask, err := s.store.GetSubtask(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load subtask", err)
		}
		return nil, false
	}
	return subtask, true
}

// subtaskOwned reports whether the caller owns the subtask's parent
// todo. The second return is false when the lookup itself failed and a
// response has been written.
func (s *Server) subtaskOwned(w http.ResponseWriter, r *http.Request, subtask *store.Subtask) (bool, bool) {
	todo, err := s.store.GetTodo(r.Context(), subtask.TodoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load parent todo", err)
		}
		return false, false
	}
	return todo.UserID == auth.UserFrom(r.Context()).ID, true
}
