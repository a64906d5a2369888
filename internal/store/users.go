package store

import (
	"context"

	"github.com/Masterminds/squirrel"
)

// CreateUser inserts a new account. The username collision surfaces as
// ErrDuplicateKey; the comparison is case sensitive, matching the
// unique index.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) (*User, error) {
	query, args, err := psql.Insert("users").
		Columns("username", "password_hash").
		Values(username, passwordHash).
		Suffix("RETURNING id, username, password_hash, created_at").
		ToSql()
	if err != nil {
		return nil, wrapError(err, "create_user", "users")
	}

	var user User
	if err := s.executor.GetContext(ctx, &user, query, args...); err != nil {
		return nil, wrapError(err, "create_user", "users")
	}
	return &user, nil
}

// GetUserByUsername finds an account by its exact username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	query, args, err := psql.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_user_by_username", "users")
	}

	var user User
	if err := s.executor.GetContext(ctx, &user, query, args...); err != nil {
		return nil, wrapError(err, "get_user_by_username", "users")
	}
	return &user, nil
}

// GetUserByID loads an account by primary key.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*User, error) {
	query, args, err := psql.Select("id", "username", "password_hash", "created_at").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, wrapError(err, "get_user_by_id", "users")
	}

	var user User
	if err := s.executor.GetContext(ctx, &user, query, args...); err != nil {
		return nil, wrapError(err, "get_user_by_id", "users")
	}
	return &user, nil
}
