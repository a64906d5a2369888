package store

import (
	"context"
	"strings"

	"github.com/Masterminds/squirrel"
)

var todoColumns = []string{
	"sno", "title", "description", "date_created", "completed",
	"priority", "category", "due_date", "position",
	"reminder_time", "reminder_minutes_before", "status", "user_id",
}

// CreateTodo inserts a new todo for its owner, assigning the next free
// position: max(position)+1 over the owner's todos, or 0 when the
// owner has none. Runs inside a transaction so concurrent creates from
// the same user cannot race the position read.
func (s *Store) CreateTodo(ctx context.Context, todo *Todo) (*Todo, error) {
	var created *Todo
	err := s.WithTransaction(ctx, func(tx *Store) error {
		position, err := tx.nextPosition(ctx, todo.UserID)
		if err != nil {
			return err
		}

		query, args, err := psql.Insert("todos").
			Columns("title", "description", "completed", "priority", "category",
				"due_date", "position", "reminder_time", "reminder_minutes_before",
				"status", "user_id").
			Values(todo.Title, todo.Description, false, todo.Priority, todo.Category,
				todo.DueDate, position, todo.ReminderTime, todo.ReminderMinutesBefore,
				StatusTodo, todo.UserID).
			Suffix("RETURNING " + joinColumns(todoColumns)).
			ToSql()
		if err != nil {
			return wrapError(err, "create_todo", "todos")
		}

		var row Todo
		if err := tx.executor.GetContext(ctx, &row, query, args...); err != nil {
			return wrapError(err, "create_todo", "todos")
		}
		created = &row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// nextPosition computes the position for a fresh todo.
func (s *Store) nextPosition(ctx context.Context, userID int64) (int, error) {
	query, args, err := psql.Select("COALESCE(MAX(position) + 1, 0)").
		From("todos").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, wrapError(err, "next_position", "todos")
	}

	var position int
	if err := s.executor.GetContext(ctx, &position, query, args...); err != nil {
		return 0, wrapError(err, "next_position", "todos")
	}
	return position, nil
}

// GetTodo loads a todo by sequence number.
func (s *Store) GetTodo(ctx context.Context, sno int64) (*Todo, error) {
	query, args, err := psql.Select(todoColumns...).
		From("todos").
		Where(squirrel.Eq{"sno": sno}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_todo", "todos")
	}

	var todo Todo
	if err := s.executor.GetContext(ctx, &todo, query, args...); err != nil {
		return nil, wrapError(err, "get_todo", "todos")
	}
	return &todo, nil
}

// ListTodos returns every todo owned by userID, highest position
// first. Subtasks and attachments are not loaded here.
func (s *Store) ListTodos(ctx context.Context, userID int64) ([]Todo, error) {
	query, args, err := psql.Select(todoColumns...).
		From("todos").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("position DESC", "sno DESC").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "list_todos", "todos")
	}

	var todos []Todo
	if err := s.executor.SelectContext(ctx, &todos, query, args...); err != nil {
		return nil, wrapError(err, "list_todos", "todos")
	}
	return todos, nil
}

// UpdateTodo writes the mutable fields of a todo back. Ownership and
// field merging are the caller's responsibility; the row is addressed
// by sno alone.
func (s *Store) UpdateTodo(ctx context.Context, todo *Todo) error {
	query, args, err := psql.Update("todos").
		Set("title", todo.Title).
		Set("description", todo.Description).
		Set("completed", todo.Completed).
		Set("priority", todo.Priority).
		Set("category", todo.Category).
		Set("due_date", todo.DueDate).
		Set("position", todo.Position).
		Set("reminder_time", todo.ReminderTime).
		Set("reminder_minutes_before", todo.ReminderMinutesBefore).
		Set("status", todo.Status).
		Where(squirrel.Eq{"sno": todo.Sno}).
		ToSql()
	if err != nil {
		return wrapError(err, "update_todo", "todos")
	}

	res, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "update_todo", "todos")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "update_todo", Table: "todos", Err: ErrNotFound}
	}
	return nil
}

// ToggleTodoCompleted flips the completed flag in place.
func (s *Store) ToggleTodoCompleted(ctx context.Context, sno int64) error {
	res, err := s.executor.ExecContext(ctx,
		"UPDATE todos SET completed = NOT completed WHERE sno = $1", sno)
	if err != nil {
		return wrapError(err, "toggle_todo", "todos")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "toggle_todo", Table: "todos", Err: ErrNotFound}
	}
	return nil
}

// DeleteTodo removes a todo with its subtasks and attachments in one
// transaction and returns the attachment filenames so the caller can
// unlink the backing files afterwards.
func (s *Store) DeleteTodo(ctx context.Context, sno int64) ([]string, error) {
	var filenames []string
	err := s.WithTransaction(ctx, func(tx *Store) error {
		query, args, err := psql.Select("filename").
			From("attachments").
			Where(squirrel.Eq{"todo_id": sno}).
			ToSql()
		if err != nil {
			return wrapError(err, "delete_todo", "attachments")
		}
		if err := tx.executor.SelectContext(ctx, &filenames, query, args...); err != nil {
			return wrapError(err, "delete_todo", "attachments")
		}

		for _, del := range []struct {
			table string
			where squirrel.Eq
		}{
			{"attachments", squirrel.Eq{"todo_id": sno}},
			{"subtasks", squirrel.Eq{"todo_id": sno}},
			{"todos", squirrel.Eq{"sno": sno}},
		} {
			query, args, err := psql.Delete(del.table).Where(del.where).ToSql()
			if err != nil {
				return wrapError(err, "delete_todo", del.table)
			}
			if _, err := tx.executor.ExecContext(ctx, query, args...); err != nil {
				return wrapError(err, "delete_todo", del.table)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return filenames, nil
}

// ReorderTodos reassigns positions for an owner-supplied front-to-back
// id sequence: position = len(order) - index. The user_id predicate
// makes ids the caller does not own silent no-ops.
func (s *Store) ReorderTodos(ctx context.Context, userID int64, order []int64) error {
	return s.WithTransaction(ctx, func(tx *Store) error {
		for i, sno := range order {
			query, args, err := psql.Update("todos").
				Set("position", len(order)-i).
				Where(squirrel.Eq{"sno": sno, "user_id": userID}).
				ToSql()
			if err != nil {
				return wrapError(err, "reorder_todos", "todos")
			}
			if _, err := tx.executor.ExecContext(ctx, query, args...); err != nil {
				return wrapError(err, "reorder_todos", "todos")
			}
		}
		return nil
	})
}

// UpdateTodoKanban updates whichever of status and position are
// supplied, leaving the other untouched.
func (s *Store) UpdateTodoKanban(ctx context.Context, sno int64, status *TodoStatus, position *int) error {
	if status == nil && position == nil {
		return nil
	}

	builder := psql.Update("todos").Where(squirrel.Eq{"sno": sno})
	if status != nil {
		builder = builder.Set("status", *status)
	}
	if position != nil {
		builder = builder.Set("position", *position)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return wrapError(err, "update_todo_kanban", "todos")
	}

	res, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapError(err, "update_todo_kanban", "todos")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &Error{Op: "update_todo_kanban", Table: "todos", Err: ErrNotFound}
	}
	return nil
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
