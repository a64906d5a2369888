package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
)

// CreateSession inserts a login session row.
func (s *Store) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	query, args, err := psql.Insert("sessions").
		Columns("token", "user_id", "expires_at").
		Values(token, userID, expiresAt).
		ToSql()
	if err != nil {
		return wrapError(err, "create_session", "sessions")
	}

	if _, err := s.executor.ExecContext(ctx, query, args...); err != nil {
		return wrapError(err, "create_session", "sessions")
	}
	return nil
}

// GetSession loads a session by token. Expiry is not checked here;
// callers decide what to do with a stale row.
func (s *Store) GetSession(ctx context.Context, token string) (*Session, error) {
	query, args, err := psql.Select("token", "user_id", "expires_at").
		From("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_session", "sessions")
	}

	var session Session
	if err := s.executor.GetContext(ctx, &session, query, args...); err != nil {
		return nil, wrapError(err, "get_session", "sessions")
	}
	return &session, nil
}

// DeleteSession removes a session row. Deleting a token that no longer
// exists is not an error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	query, args, err := psql.Delete("sessions").
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return wrapError(err, "delete_session", "sessions")
	}

	if _, err := s.executor.ExecContext(ctx, query, args...); err != nil {
		return wrapError(err, "delete_session", "sessions")
	}
	return nil
}

// DeleteExpiredSessions clears every session past its expiry and
// returns how many rows were removed.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := psql.Delete("sessions").
		Where(squirrel.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, wrapError(err, "delete_expired_sessions", "sessions")
	}

	res, err := s.executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapError(err, "delete_expired_sessions", "sessions")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapError(err, "delete_expired_sessions", "sessions")
	}
	return n, nil
}
