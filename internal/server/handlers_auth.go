package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/store"
)

// handleSignup renders the signup form and creates accounts. A
// username collision re-renders with a notice instead of an error page.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		s.render(w, r, "signup.html", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		redirectNotice(w, r, "/signup", "invalid_credentials")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.log.Error("hash password", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if _, err := s.store.CreateUser(r.Context(), username, hash); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			redirectNotice(w, r, "/signup", "user_exists")
			return
		}
		s.log.Error("create user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	redirectNotice(w, r, "/login", "signup_ok")
}

// handleLogin authenticates and opens a session. The same notice
// covers unknown usernames and wrong passwords.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	// Already logged in? Straight home.
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if _, err := s.sessions.Validate(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
	}

	if r.Method == http.MethodGet {
		s.render(w, r, "login.html", nil)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			redirectNotice(w, r, "/login", "invalid_credentials")
			return
		}
		s.log.Error("load user", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		redirectNotice(w, r, "/login", "invalid_credentials")
		return
	}

	cookie, err := s.sessions.Create(r.Context(), user.ID)
	if err != nil {
		s.log.Error("create session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, cookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleLogout ends the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		if err := s.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			s.log.Warn("destroy session", "error", err)
		}
	}
	http.SetCookie(w, auth.ExpiredCookie())
	http.Redirect(w, r, "/login", http.StatusFound)
}
