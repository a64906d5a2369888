package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eleven-am/tasknest/internal/logger"
	"github.com/eleven-am/tasknest/internal/store"
)

// CookieName is the session cookie set on login.
const CookieName = "tasknest_session"

// DefaultTTL is how long a login session stays valid.
const DefaultTTL = 30 * 24 * time.Hour

var (
	// ErrInvalidSession covers every way a presented session can be
	// bad: malformed cookie, bad signature, unknown token, expired row.
	ErrInvalidSession = errors.New("invalid session")
)

// Sessions creates and validates login sessions. Tokens are opaque
// UUIDs stored server-side; the cookie value carries the token plus an
// HMAC so forged or truncated cookies are rejected without a database
// hit.
type Sessions struct {
	store  *store.Store
	secret []byte
	ttl    time.Duration
	log    logger.Logger
}

// NewSessions builds a session manager over the store.
func NewSessions(st *store.Store, secret string) *Sessions {
	return &Sessions{
		store:  st,
		secret: []byte(secret),
		ttl:    DefaultTTL,
		log:    logger.Auth(),
	}
}

// Create opens a session for the user and returns the cookie to set.
func (s *Sessions) Create(ctx context.Context, userID int64) (*http.Cookie, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)

	if err := s.store.CreateSession(ctx, token, userID, expiresAt); err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    token + "." + s.sign(token),
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Validate resolves a cookie value to the logged-in user. Expired
// session rows are deleted on sight.
func (s *Sessions) Validate(ctx context.Context, cookieValue string) (*store.User, error) {
	token, ok := s.verify(cookieValue)
	if !ok {
		return nil, ErrInvalidSession
	}

	session, err := s.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		if err := s.store.DeleteSession(ctx, token); err != nil {
			s.log.Warn("delete expired session", "error", err)
		}
		return nil, ErrInvalidSession
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Destroy removes the session behind a cookie value. Bad cookies are
// ignored.
func (s *Sessions) Destroy(ctx context.Context, cookieValue string) error {
	token, ok := s.verify(cookieValue)
	if !ok {
		return nil
	}
	return s.store.DeleteSession(ctx, token)
}

// ExpiredCookie returns a cookie that clears the session on the client.
func ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Sessions) sign(token string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}

// verify splits a cookie value into token and signature and checks the
// signature in constant time.
func (s *Sessions) verify(cookieValue string) (string, bool) {
	token, sig, found := strings.Cut(cookieValue, ".")
	if !found || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(token))) {
		return "", false
	}
	return token, true
}
