package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router assembles the route table. Signup and login are the only
// application routes reachable without a session.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/signup", s.handleSignup).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodGet, http.MethodPost)

	if s.cfg.StaticDir != "" {
		r.PathPrefix("/static/").Handler(
			http.StripPrefix("/static/", http.FileServer(http.Dir(s.cfg.StaticDir))))
	}

	protected := r.PathPrefix("/").Subrouter()
	protected.Use(s.requireAuth)

	protected.HandleFunc("/", s.handleHome).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/logout", s.handleLogout).Methods(http.MethodGet)
	protected.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)

	protected.HandleFunc("/delete/{sno:[0-9]+}", s.handleDeleteTodo).Methods(http.MethodGet)
	protected.HandleFunc("/update/{sno:[0-9]+}", s.handleUpdateTodo).Methods(http.MethodGet, http.MethodPost)
	protected.HandleFunc("/toggle/{sno:[0-9]+}", s.handleToggleTodo).Methods(http.MethodPost)
	protected.HandleFunc("/reorder", s.handleReorder).Methods(http.MethodPost)
	protected.HandleFunc("/kanban/update", s.handleKanbanUpdate).Methods(http.MethodPost)

	protected.HandleFunc("/subtask/add/{sno:[0-9]+}", s.handleAddSubtask).Methods(http.MethodPost)
	protected.HandleFunc("/subtask/toggle/{id:[0-9]+}", s.handleToggleSubtask).Methods(http.MethodPost)
	protected.HandleFunc("/subtask/delete/{id:[0-9]+}", s.handleDeleteSubtask).Methods(http.MethodGet)

	protected.HandleFunc("/attach/{sno:[0-9]+}", s.handleAttach).Methods(http.MethodPost)
	protected.HandleFunc("/delete_attach/{id:[0-9]+}", s.handleDeleteAttachment).Methods(http.MethodGet)
	protected.HandleFunc("/uploads/{filename}", s.handleServeUpload).Methods(http.MethodGet)

	protected.HandleFunc("/api/stats", s.handleAPIStats).Methods(http.MethodGet)
	protected.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	protected.HandleFunc("/ai/summarize", s.handleSummarize).Methods(http.MethodPost)

	return r
}
