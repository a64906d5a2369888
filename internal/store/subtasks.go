package store

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// CreateSubtask adds a checklist item under a todo.
func (s *Store) CreateSubtask(ctx context.Context, todoID int64, title string) (*Subtask, error) {
	query, args, err := psql.Insert("subtasks").
		Columns("todo_id", "title").
		Values(todoID, title).
		Suffix("RETURNING id, todo_id, title, done").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "create_subtask", "subtasks")
	}

	var subtask Subtask
	if err := s.executor.GetContext(ctx, &subtask, query, args...); err != nil {
		return nil, wrapError(err, "create_subtask", "subtasks")
	}
	return &subtask, nil
}

// GetSubtask loads a subtask by id.
func (s *Store) GetSubtask(ctx context.Context, id int64) (*Subtask, error) {
	query, args, err := psql.Select("id", "todo_id", "title", "done").
		From("subtasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_subtask", "subtasks")
	}

	var subtask Subtask
	if err := s.executor.GetContext(ctx, &subtask, query, args...); err != nil {
		return nil, wrapError(err, "get_subtask", "subtasks")
	}
	return &subtask, nil
}

// ToggleSubtaskDone flips the done flag in place.
func (s *Store) ToggleSubtaskDone(ctx context.Context, id int64) error {
	res, err := s.executor.ExecContext(ctx,
		"UPDATE subtasks SET done = NOT done WHERE id = $1", id)
	if err != nil {
		return wrapError(err, "toggle_subtask", "subtasks")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "toggle_subtask", Table: "subtasks", Err: ErrNotFound}
	}
	return nil
}

// DeleteSubtask removes a subtask row.
func (s *Store) DeleteSubtask(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("subtasks").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return wrapError(err, "delete_subtask", "subtasks")
	}

	if _, err := s.executor.ExecContext(ctx, query, args...); err != nil {
		return wrapError(err, "delete_subtask", "subtasks")
	}
	return nil
}

// ListSubtasksByOwner returns every subtask under any todo owned by
// userID, keyed for the list view in one query instead of one per todo.
func (s *Store) ListSubtasksByOwner(ctx context.Context, userID int64) ([]Subtask, error) {
	query, args, err := psql.Select("s.id", "s.todo_id", "s.title", "s.done").
		From("subtasks s").
		Join("todos t ON t.sno = s.todo_id").
		Where(squirrel.Eq{"t.user_id": userID}).
		OrderBy("s.id").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "list_subtasks_by_owner", "subtasks")
	}

	var subtasks []Subtask
	if err := s.executor.SelectContext(ctx, &subtasks, query, args...); err != nil {
		return nil, wrapError(err, "list_subtasks_by_owner", "subtasks")
	}
	return subtasks, nil
}
