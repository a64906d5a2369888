package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/store"
)

// reminderLayouts are the accepted reminder timestamp shapes. The HTML
// datetime-local input produces the minute-precision form.
var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// parseReminder parses an ISO-8601 reminder string. Anything
// unparseable, including empty input, is silently dropped to nil.
func parseReminder(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range reminderLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// homeData feeds the index template.
type homeData struct {
	Todos      []store.Todo
	Categories []string
}

// handleHome renders the todo list on GET and creates a todo on POST.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	if r.Method == http.MethodPost {
		s.createTodo(w, r, user)
		return
	}

	todos, err := s.store.ListTodos(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, "list todos", err)
		return
	}

	if err := s.loadChildren(r, user.ID, todos); err != nil {
		s.internalError(w, "load todo children", err)
		return
	}

	s.render(w, r, "index.html", homeData{
		Todos:      todos,
		Categories: categoryChoices(todos),
	})
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request, user *store.User) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	todo := &store.Todo{
		Title:        strings.TrimSpace(r.PostForm.Get("title")),
		Description:  strings.TrimSpace(r.PostForm.Get("desc")),
		Priority:     formOr(r, "priority", store.DefaultPriority),
		Category:     formOr(r, "category", store.DefaultCategory),
		ReminderTime: parseReminder(r.PostForm.Get("reminder_time")),
		UserID:       user.ID,
	}
	if r.PostForm.Has("due_date") {
		due := r.PostForm.Get("due_date")
		todo.DueDate = &due
	}

	if _, err := s.store.CreateTodo(r.Context(), todo); err != nil {
		s.internalError(w, "create todo", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// loadChildren attaches subtasks and attachments to their todos with
// two batched queries instead of one pair per todo.
func (s *Server) loadChildren(r *http.Request, userID int64, todos []store.Todo) error {
	if len(todos) == 0 {
		return nil
	}

	subtasks, err := s.store.ListSubtasksByOwner(r.Context(), userID)
	if err != nil {
		return err
	}
	attachments, err := s.store.ListAttachmentsByOwner(r.Context(), userID)
	if err != nil {
		return err
	}

	index := make(map[int64]*store.Todo, len(todos))
	for i := range todos {
		index[todos[i].Sno] = &todos[i]
	}
	for _, st := range subtasks {
		if t, ok := index[st.TodoID]; ok {
			t.Subtasks = append(t.Subtasks, st)
		}
	}
	for _, a := range attachments {
		if t, ok := index[a.TodoID]; ok {
			t.Attachments = append(t.Attachments, a)
		}
	}
	return nil
}

// categoryChoices merges the user's categories with the stock set for
// the category picker.
func categoryChoices(todos []store.Todo) []string {
	set := map[string]struct{}{
		"General": {}, "Work": {}, "Study": {}, "Personal": {}, "Urgent": {},
	}
	for _, t := range todos {
		set[t.Category] = struct{}{}
	}

	choices := make([]string, 0, len(set))
	for c := range set {
		choices = append(choices, c)
	}
	sort.Strings(choices)
	return choices
}

// handleUpdateTodo renders the edit form on GET and applies a partial
// update on POST: absent fields keep their previous values, while the
// reminder is re-parsed from scratch (invalid input clears it).
func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.pageOwnedTodo(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "update.html", todo)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	todo.Title = formOr(r, "title", todo.Title)
	todo.Description = formOr(r, "desc", todo.Description)
	todo.Priority = formOr(r, "priority", todo.Priority)
	todo.Category = formOr(r, "category", todo.Category)
	if r.PostForm.Has("due_date") {
		due := r.PostForm.Get("due_date")
		todo.DueDate = &due
	}
	todo.ReminderTime = parseReminder(r.PostForm.Get("reminder_time"))

	if err := s.store.UpdateTodo(r.Context(), todo); err != nil {
		s.internalError(w, "update todo", err)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleDeleteTodo removes a todo with its dependents, then unlinks
// the attachment files best-effort.
func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.pageOwnedTodo(w, r)
	if !ok {
		return
	}

	filenames, err := s.store.DeleteTodo(r.Context(), todo.Sno)
	if err != nil {
		s.internalError(w, "delete todo", err)
		return
	}

	for _, name := range filenames {
		s.uploads.Remove(name)
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// handleToggleTodo flips the completed flag. AJAX endpoint: bare
// status codes, no redirects.
func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	todo, ok := s.ajaxOwnedTodo(w, r)
	if !ok {
		return
	}

	if err := s.store.ToggleTodoCompleted(r.Context(), todo.Sno); err != nil {
		s.internalError(w, "toggle todo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// flexID tolerates JSON ids sent as numbers or numeric strings.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

// handleReorder applies a wholesale repositioning of the visible list.
// Ids the caller does not own are skipped silently inside the store.
func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	var payload struct {
		Order []flexID `json:"order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	order := make([]int64, len(payload.Order))
	for i, id := range payload.Order {
		order[i] = int64(id)
	}

	if err := s.store.ReorderTodos(r.Context(), user.ID, order); err != nil {
		s.internalError(w, "reorder todos", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleKanbanUpdate moves a card: whichever of status and position
// arrive are updated, the other is left alone.
func (s *Server) handleKanbanUpdate(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFrom(r.Context())

	var payload struct {
		Sno      flexID  `json:"sno"`
		Status   *string `json:"status"`
		Position *int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	var status *store.TodoStatus
	if payload.Status != nil {
		st := store.TodoStatus(*payload.Status)
		if !store.ValidStatus(st) {
			http.Error(w, "invalid status", http.StatusBadRequest)
			return
		}
		status = &st
	}

	todo, err := s.store.GetTodo(r.Context(), int64(payload.Sno))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		s.internalError(w, "load todo", err)
		return
	}
	if todo.UserID != user.ID {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err := s.store.UpdateTodoKanban(r.Context(), todo.Sno, status, payload.Position); err != nil {
		s.internalError(w, "kanban update", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pageOwnedTodo resolves {sno} for page endpoints: 404 for a missing
// todo, silent redirect home for another user's todo.
func (s *Server) pageOwnedTodo(w http.ResponseWriter, r *http.Request) (*store.Todo, bool) {
	todo, err := s.todoFromPath(r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load todo", err)
		}
		return nil, false
	}

	if todo.UserID != auth.UserFrom(r.Context()).ID {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil, false
	}
	return todo, true
}

// ajaxOwnedTodo resolves {sno} for AJAX endpoints: 404 missing, 403
// not-owner.
func (s *Server) ajaxOwnedTodo(w http.ResponseWriter, r *http.Request) (*store.Todo, bool) {
	todo, err := s.todoFromPath(r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load todo", err)
		}
		return nil, false
	}

	if todo.UserID != auth.UserFrom(r.Context()).ID {
		w.WriteHeader(http.StatusForbidden)
		return nil, false
	}
	return todo, true
}

func (s *Server) todoFromPath(r *http.Request) (*store.Todo, error) {
	sno, err := strconv.ParseInt(mux.Vars(r)["sno"], 10, 64)
	if err != nil {
		return nil, &store.Error{Op: "parse_sno", Err: store.ErrNotFound}
	}
	return s.store.GetTodo(r.Context(), sno)
}

// formOr returns the submitted value, or fallback when the field was
// not part of the form at all. Present-but-empty overwrites.
func formOr(r *http.Request, key, fallback string) string {
	if r.PostForm.Has(key) {
		return r.PostForm.Get(key)
	}
	return fallback
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
