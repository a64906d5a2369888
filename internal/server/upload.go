package server

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eleven-am/tasknest/internal/logger"
)

// allowedExtensions is the attachment extension allow-list, matched
// case-insensitively.
var allowedExtensions = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".pdf": {}, ".txt": {},
}

// AllowedFile reports whether the original filename carries an allowed
// extension.
func AllowedFile(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// UploadDir stores attachment files under one directory with
// collision-resistant names.
type UploadDir struct {
	dir string
	log logger.Logger
}

// NewUploadDir creates the directory if needed.
func NewUploadDir(dir string) (*UploadDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadDir{dir: dir, log: logger.Uploads()}, nil
}

// Save writes src under {todoID}_{unixTimestamp}_{sanitizedName} and
// returns the final on-disk name. Embedding the id and timestamp keeps
// concurrent uploads from overwriting each other.
func (u *UploadDir) Save(todoID int64, originalName string, src io.Reader) (string, error) {
	final := fmt.Sprintf("%d_%d_%s", todoID, time.Now().Unix(), SanitizeFilename(originalName))

	dst, err := os.Create(filepath.Join(u.dir, final))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return final, nil
}

// Remove unlinks a stored file best-effort. A file already gone is not
// an error worth surfacing; the row it belonged to is already deleted.
func (u *UploadDir) Remove(filename string) {
	if err := os.Remove(filepath.Join(u.dir, filepath.Base(filename))); err != nil && !os.IsNotExist(err) {
		u.log.Warn("remove upload file", "filename", filename, "error", err)
	}
}

// Path resolves a stored filename for serving. Names carrying path
// separators or traversal are rejected.
func (u *UploadDir) Path(filename string) (string, bool) {
	if filename == "" || filename != filepath.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", false
	}
	return filepath.Join(u.dir, filename), true
}

// SanitizeFilename strips directory components and reduces the name to
// a safe character set, the way werkzeug's secure_filename does.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "file"
	}
	return out
}
