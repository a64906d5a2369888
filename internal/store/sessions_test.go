package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions(t *testing.T) {
	const token = "0b364f74-9c2f-4e6e-9c39-4f2dbbd6fa60"

	t.Run("create and load round trip", func(t *testing.T) {
		st, mock := newMockStore(t)
		expires := time.Now().Add(time.Hour)

		mock.ExpectExec(`INSERT INTO sessions \(token,user_id,expires_at\) VALUES \(\$1,\$2,\$3\)`).
			WithArgs(token, int64(7), expires).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`SELECT token, user_id, expires_at FROM sessions WHERE token = \$1`).
			WithArgs(token).
			WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at"}).
				AddRow(token, 7, expires))

		require.NoError(t, st.CreateSession(context.Background(), token, 7, expires))

		session, err := st.GetSession(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), session.UserID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown token maps to ErrNotFound", func(t *testing.T) {
		st, mock := newMockStore(t)

		mock.ExpectQuery(`SELECT token, user_id, expires_at FROM sessions WHERE token = \$1`).
			WithArgs(token).
			WillReturnRows(sqlmock.NewRows([]string{"token", "user_id", "expires_at"}))

		_, err := st.GetSession(context.Background(), token)
		assert.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("expired cleanup reports row count", func(t *testing.T) {
		st, mock := newMockStore(t)
		now := time.Now()

		mock.ExpectExec(`DELETE FROM sessions WHERE expires_at < \$1`).
			WithArgs(now).
			WillReturnResult(sqlmock.NewResult(0, 4))

		n, err := st.DeleteExpiredSessions(context.Background(), now)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
