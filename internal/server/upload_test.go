package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowedFile(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"photo.png", true},
		{"photo.PNG", true},
		{"scan.Jpeg", true},
		{"doc.pdf", true},
		{"notes.txt", true},
		{"anim.gif", true},
		{"virus.exe", false},
		{"script.sh", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, AllowedFile(tt.filename))
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{`..\..\windows\system32`, "system32"},
		{"my photo (1).png", "my_photo__1_.png"},
		{".hidden", "hidden"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestUploadDirSave(t *testing.T) {
	uploads, err := NewUploadDir(t.TempDir())
	require.NoError(t, err)

	final, err := uploads.Save(42, "report.pdf", strings.NewReader("content"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(final, "42_"), "name embeds the todo id")
	assert.True(t, strings.HasSuffix(final, "_report.pdf"), "name keeps the sanitized original")

	path, ok := uploads.Path(final)
	require.True(t, ok)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestUploadDirRemoveMissingFile(t *testing.T) {
	uploads, err := NewUploadDir(t.TempDir())
	require.NoError(t, err)

	// Removing a file that is already gone must not panic or error out.
	uploads.Remove("1_1700000000_gone.txt")
}

func TestUploadDirPathRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	uploads, err := NewUploadDir(dir)
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../secret", "a/b.txt", ".hidden"} {
		_, ok := uploads.Path(name)
		assert.False(t, ok, "path %q should be rejected", name)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "ok.txt"), []byte("x"), 0o644))
	path, ok := uploads.Path("ok.txt")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "ok.txt"), path)
}
