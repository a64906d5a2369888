package store

import (
	"time"
)

// TodoStatus is the kanban column a todo sits in.
type TodoStatus string

const (
	StatusTodo       TodoStatus = "todo"
	StatusInProgress TodoStatus = "inprogress"
	StatusDone       TodoStatus = "done"
)

// ValidStatus reports whether s is one of the three kanban columns.
func ValidStatus(s TodoStatus) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Default labels applied when a todo is created without explicit values.
const (
	DefaultPriority = "Medium"
	DefaultCategory = "General"
)

// User is an account that owns todos. The password is stored as a
// bcrypt hash, never in clear.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Todo is a single task record owned by one user. Position drives the
// manual ordering of the list view: higher position sorts earlier.
type Todo struct {
	Sno         int64     `db:"sno" json:"sno"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	DateCreated time.Time `db:"date_created" json:"date_created"`
	Completed   bool      `db:"completed" json:"completed"`
	Priority    string    `db:"priority" json:"priority"`
	Category    string    `db:"category" json:"category"`
	DueDate     *string   `db:"due_date" json:"due_date,omitempty"`
	Position    int       `db:"position" json:"position"`
	UserID      int64     `db:"user_id" json:"-"`

	// Reminder fields are stored but no scheduler evaluates them.
	ReminderTime          *time.Time `db:"reminder_time" json:"reminder_time,omitempty"`
	ReminderMinutesBefore int        `db:"reminder_minutes_before" json:"reminder_minutes_before"`

	Status TodoStatus `db:"status" json:"status"`

	// Loaded separately, not scanned from the todos table.
	Subtasks    []Subtask    `db:"-" json:"subtasks,omitempty"`
	Attachments []Attachment `db:"-" json:"attachments,omitempty"`
}

// Subtask is a checklist item under a todo.
type Subtask struct {
	ID     int64  `db:"id" json:"id"`
	TodoID int64  `db:"todo_id" json:"todo_id"`
	Title  string `db:"title" json:"title"`
	Done   bool   `db:"done" json:"done"`
}

// Attachment records an uploaded file that belongs to a todo. Filename
// is the on-disk name inside the upload directory, already mangled to
// be collision resistant.
type Attachment struct {
	ID       int64  `db:"id" json:"id"`
	TodoID   int64  `db:"todo_id" json:"todo_id"`
	Filename string `db:"filename" json:"filename"`
	Mimetype string `db:"mimetype" json:"mimetype"`
}

// Session is an opaque-token login session. The token travels in a
// signed cookie and is validated against this row on every request.
type Session struct {
	Token     string    `db:"token" json:"-"`
	UserID    int64     `db:"user_id" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"-"`
}
