package server

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Notice is a one-shot user-visible message, the stateless counterpart
// of a server-side flash. It travels as a ?notice= code on redirects.
type Notice struct {
	Level   string
	Message string
}

var notices = map[string]Notice{
	"user_exists":         {"warning", "User exists"},
	"signup_ok":           {"success", "Created. Login now."},
	"invalid_credentials": {"danger", "Invalid credentials"},
	"not_allowed":         {"danger", "Not allowed"},
	"no_file":             {"warning", "No file"},
	"uploaded":            {"success", "Uploaded"},
	"bad_file_type":       {"danger", "File type not allowed"},
}

func noticeFrom(r *http.Request) *Notice {
	code := r.URL.Query().Get("notice")
	if code == "" {
		return nil
	}
	if n, ok := notices[code]; ok {
		return &n
	}
	return nil
}

// redirectNotice redirects carrying a notice code for the target page
// to render once.
func redirectNotice(w http.ResponseWriter, r *http.Request, path, code string) {
	http.Redirect(w, r, fmt.Sprintf("%s?notice=%s", path, url.QueryEscape(code)), http.StatusFound)
}

// pageData is the envelope every template receives.
type pageData struct {
	User   *store.User
	Notice *Notice
	Data   interface{}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data interface{}) {
	page := pageData{
		User:   auth.UserFrom(r.Context()),
		Notice: noticeFrom(r),
		Data:   data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, page); err != nil {
		s.log.Error("render template", "template", name, "error", err)
	}
}
