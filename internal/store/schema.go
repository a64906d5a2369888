package store

import "context"

// Cascades are enforced by store code inside transactions, not by the
// FK clauses alone; the clauses are a backstop for out-of-band writes.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      VARCHAR(120) NOT NULL UNIQUE,
	password_hash VARCHAR(200) NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS todos (
	sno                     SERIAL PRIMARY KEY,
	title                   VARCHAR(200) NOT NULL,
	description             VARCHAR(500) NOT NULL DEFAULT '',
	date_created            TIMESTAMPTZ NOT NULL DEFAULT now(),
	completed               BOOLEAN NOT NULL DEFAULT FALSE,
	priority                VARCHAR(20) NOT NULL DEFAULT 'Medium',
	category                VARCHAR(50) NOT NULL DEFAULT 'General',
	due_date                VARCHAR(20),
	position                INTEGER NOT NULL DEFAULT 0,
	reminder_time           TIMESTAMPTZ,
	reminder_minutes_before INTEGER NOT NULL DEFAULT 0,
	status                  VARCHAR(20) NOT NULL DEFAULT 'todo',
	user_id                 INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_todos_user ON todos(user_id);
CREATE INDEX IF NOT EXISTS idx_todos_user_position ON todos(user_id, position DESC);

CREATE TABLE IF NOT EXISTS subtasks (
	id      SERIAL PRIMARY KEY,
	todo_id INTEGER NOT NULL REFERENCES todos(sno) ON DELETE CASCADE,
	title   VARCHAR(200) NOT NULL,
	done    BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE INDEX IF NOT EXISTS idx_subtasks_todo ON subtasks(todo_id);

CREATE TABLE IF NOT EXISTS attachments (
	id       SERIAL PRIMARY KEY,
	todo_id  INTEGER NOT NULL REFERENCES todos(sno) ON DELETE CASCADE,
	filename VARCHAR(300) NOT NULL,
	mimetype VARCHAR(100) NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_attachments_todo ON attachments(todo_id);

CREATE TABLE IF NOT EXISTS sessions (
	token      UUID PRIMARY KEY,
	user_id    INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	expires_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);
`

// EnsureSchema creates all tables and indexes if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.executor.ExecContext(ctx, schema); err != nil {
		return wrapError(err, "ensure_schema", "")
	}
	s.log.Debug("schema ensured")
	return nil
}
