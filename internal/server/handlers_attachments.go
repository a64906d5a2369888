package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/eleven-am/tasknest/internal/auth"
	"github.com/eleven-am/tasknest/internal/store"
)

// maxUploadBytes caps multipart parsing memory; larger files spill to
// temp storage.
const maxUploadBytes = 16 << 20

// handleAttach stores an uploaded file under the caller's todo.
// Unlike the other page endpoints, attaching to another user's todo
// carries a visible notice rather than redirecting silently.
func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todoFromPath(r)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load todo", err)
		}
		return
	}
	if todo.UserID != auth.UserFrom(r.Context()).ID {
		redirectNotice(w, r, "/", "not_allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		redirectNotice(w, r, "/", "no_file")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		redirectNotice(w, r, "/", "no_file")
		return
	}
	defer file.Close()

	if !AllowedFile(header.Filename) {
		redirectNotice(w, r, "/", "bad_file_type")
		return
	}

	final, err := s.uploads.Save(todo.Sno, header.Filename, file)
	if err != nil {
		s.internalError(w, "save upload", err)
		return
	}

	mimetype := header.Header.Get("Content-Type")
	if _, err := s.store.CreateAttachment(r.Context(), todo.Sno, final, mimetype); err != nil {
		s.uploads.Remove(final)
		s.internalError(w, "record attachment", err)
		return
	}

	redirectNotice(w, r, "/", "uploaded")
}

// handleDeleteAttachment removes the row and unlinks the file; a
// missing file on disk is ignored.
func (s *Server) handleDeleteAttachment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	attachment, err := s.store.GetAttachment(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load attachment", err)
		}
		return
	}

	todo, err := s.store.GetTodo(r.Context(), attachment.TodoID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
		} else {
			s.internalError(w, "load parent todo", err)
		}
		return
	}
	if todo.UserID != auth.UserFrom(r.Context()).ID {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	s.uploads.Remove(attachment.Filename)

	if err := s.store.DeleteAttachment(r.Context(), attachment.ID); err != nil {
		s.internalError(w, "delete attachment", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// handleServeUpload streams a stored attachment file to any
// authenticated user. The requester is deliberately NOT checked
// against the owning todo; a user who knows a filename can fetch it.
func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	path, ok := s.uploads.Path(mux.Vars(r)["filename"])
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, path)
}
