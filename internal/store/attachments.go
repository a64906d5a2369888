package store

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// CreateAttachment records an uploaded file under a todo. The filename
// is the final on-disk name, already mangled by the caller.
func (s *Store) CreateAttachment(ctx context.Context, todoID int64, filename, mimetype string) (*Attachment, error) {
	query, args, err := psql.Insert("attachments").
		Columns("todo_id", "filename", "mimetype").
		Values(todoID, filename, mimetype).
		Suffix("RETURNING id, todo_id, filename, mimetype").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "create_attachment", "attachments")
	}

	var attachment Attachment
	if err := s.executor.GetContext(ctx, &attachment, query, args...); err != nil {
		return nil, wrapError(err, "create_attachment", "attachments")
	}
	return &attachment, nil
}

// GetAttachment loads an attachment by id.
func (s *Store) GetAttachment(ctx context.Context, id int64) (*Attachment, error) {
	query, args, err := psql.Select("id", "todo_id", "filename", "mimetype").
		From("attachments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_attachment", "attachments")
	}

	var attachment Attachment
	if err := s.executor.GetContext(ctx, &attachment, query, args...); err != nil {
		return nil, wrapError(err, "get_attachment", "attachments")
	}
	return &attachment, nil
}

// DeleteAttachment removes the database row only; the caller unlinks
// the backing file best-effort.
func (s *Store) DeleteAttachment(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("attachments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return wrapError(err, "delete_attachment", "attachments")
	}

	if _, err := s.executor.ExecContext(ctx, query, args...); err != nil {
		return wrapError(err, "delete_attachment", "attachments")
	}
	return nil
}

// ListAttachmentsByOwner returns every attachment under any todo owned
// by userID.
func (s *Store) ListAttachmentsByOwner(ctx context.Context, userID int64) ([]Attachment, error) {
	query, args, err := psql.Select("a.id", "a.todo_id", "a.filename", "a.mimetype").
		From("attachments a").
		Join("todos t ON t.sno = a.todo_id").
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "list_attachments_by_owner", "attachments")
	}

	var attachments []Attachment
	if err := s.executor.SelectContext(ctx, &attachments, query, args...); err != nil {
		return nil, wrapError(err, "list_attachments_by_owner", "attachments")
	}
	return attachments, nil
}
