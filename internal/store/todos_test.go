package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func todoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"sno", "title", "description", "date_created", "completed",
		"priority", "category", "due_date", "position",
		"reminder_time", "reminder_minutes_before", "status", "user_id",
	})
}

func TestCreateTodo(t *testing.T) {
	t.Run("first todo gets position zero", func(t *testing.T) {
		st, mock := newMockStore(t)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\) \+ 1, 0\) FROM todos WHERE user_id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0))
		mock.ExpectQuery(`INSERT INTO todos .+ RETURNING`).
			WillReturnRows(todoRows().
				AddRow(1, "buy milk", "", now, false, "Medium", "General", nil, 0, nil, 0, "todo", 7))
		mock.ExpectCommit()

		created, err := st.CreateTodo(context.Background(), &Todo{
			Title:    "buy milk",
			Priority: DefaultPriority,
			Category: DefaultCategory,
			UserID:   7,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.Sno)
		assert.Equal(t, 0, created.Position)
		assert.Equal(t, StatusTodo, created.Status)
		assert.False(t, created.Completed)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("next todo gets max position plus one", func(t *testing.T) {
		st, mock := newMockStore(t)
		now := time.Now()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COALESCE\(MAX\(position\) \+ 1, 0\) FROM todos WHERE user_id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(3))
		mock.ExpectQuery(`INSERT INTO todos .+ RETURNING`).
			WillReturnRows(todoRows().
				AddRow(4, "laundry", "", now, false, "Medium", "General", nil, 3, nil, 0, "todo", 7))
		mock.ExpectCommit()

		created, err := st.CreateTodo(context.Background(), &Todo{
			Title:    "laundry",
			Priority: DefaultPriority,
			Category: DefaultCategory,
			UserID:   7,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, created.Position)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetTodo(t *testing.T) {
	t.Run("missing todo maps to ErrNotFound", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT .+ FROM todos WHERE sno = \$1`).
			WithArgs(int64(99)).
			WillReturnRows(todoRows())

		todo, err := st.GetTodo(context.Background(), 99)
		assert.Nil(t, todo)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReorderTodos(t *testing.T) {
	t.Run("positions descend front to back", func(t *testing.T) {
		st, mock := newMockStore(t)

		// order [3, 1, 2] over 3 elements: 3->3, 1->2, 2->1
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE todos SET position = \$1 WHERE sno = \$2 AND user_id = \$3`).
			WithArgs(3, int64(3), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE todos SET position = \$1 WHERE sno = \$2 AND user_id = \$3`).
			WithArgs(2, int64(1), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE todos SET position = \$1 WHERE sno = \$2 AND user_id = \$3`).
			WithArgs(1, int64(2), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := st.ReorderTodos(context.Background(), 7, []int64{3, 1, 2})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign ids are silent no-ops", func(t *testing.T) {
		st, mock := newMockStore(t)

		// sno 42 belongs to another user; the WHERE simply matches no rows.
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE todos SET position = \$1 WHERE sno = \$2 AND user_id = \$3`).
			WithArgs(1, int64(42), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := st.ReorderTodos(context.Background(), 7, []int64{42})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteTodo(t *testing.T) {
	t.Run("cascades dependents and returns filenames", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT filename FROM attachments WHERE todo_id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"filename"}).
				AddRow("5_1700000000_a.png").
				AddRow("5_1700000001_b.pdf"))
		mock.ExpectExec(`DELETE FROM attachments WHERE todo_id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM subtasks WHERE todo_id = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM todos WHERE sno = \$1`).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		filenames, err := st.DeleteTodo(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"5_1700000000_a.png", "5_1700000001_b.pdf"}, filenames)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when a delete fails", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT filename FROM attachments WHERE todo_id = \$1`).
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"filename"}))
		mock.ExpectExec(`DELETE FROM attachments WHERE todo_id = \$1`).
			WithArgs(int64(5)).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		_, err := st.DeleteTodo(context.Background(), 5)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateTodoKanban(t *testing.T) {
	t.Run("updates only the supplied fields", func(t *testing.T) {
		st, mock := newMockStore(t)

		status := StatusDone
		mock.ExpectExec(`UPDATE todos SET status = \$1 WHERE sno = \$2`).
			WithArgs(string(status), int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := st.UpdateTodoKanban(context.Background(), 9, &status, nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing supplied is a no-op", func(t *testing.T) {
		st, mock := newMockStore(t)

		err := st.UpdateTodoKanban(context.Background(), 9, nil, nil)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing todo maps to ErrNotFound", func(t *testing.T) {
		st, mock := newMockStore(t)

		position := 4
		mock.ExpectExec(`UPDATE todos SET position = \$1 WHERE sno = \$2`).
			WithArgs(position, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := st.UpdateTodoKanban(context.Background(), 404, nil, &position)
		assert.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestToggleTodoCompleted(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE todos SET completed = NOT completed WHERE sno = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.ToggleTodoCompleted(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}
