// Package identity adapts the external identity provider. The core only ever
// asks who is signed in; credentials are handled by the provider.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider exposes the current signed-in subject.
type Provider interface {
	CurrentUserID() (string, bool)
}

// Static is a Provider whose subject is set directly.
type Static struct {
	mu  sync.RWMutex
	uid string
}

// NewStatic returns a provider signed in as uid. An empty uid means signed out.
func NewStatic(uid string) *Static {
	return &Static{uid: uid}
}

// CurrentUserID returns the subject set last, if any.
func (s *Static) CurrentUserID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uid, s.uid != ""
}

// SignInAs switches the current subject.
func (s *Static) SignInAs(uid string) {
	s.mu.Lock()
	s.uid = uid
	s.mu.Unlock()
}

// SignOut clears the subject.
func (s *Static) SignOut() { s.SignInAs("") }

// Backend performs the provider's email/password sign-in and returns a signed ID token.
type Backend interface {
	SignIn(ctx context.Context, email, password string) (string, error)
}

// Errors returned when a token cannot be used as a session.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("no subject")
)

// TokenSession keeps the ID token issued by the provider and derives the
// current subject from its "sub" claim. The token is re-validated on every
// call, so an expired token reads as signed out.
type TokenSession struct {
	backend Backend
	key     []byte

	mu    sync.RWMutex
	token string
}

// NewTokenSession creates a signed-out session. key verifies HS256 tokens.
func NewTokenSession(backend Backend, key []byte) *TokenSession {
	return &TokenSession{backend: backend, key: key}
}

// SignIn exchanges credentials for a token and returns its subject.
func (s *TokenSession) SignIn(ctx context.Context, email, password string) (string, error) {
	tok, err := s.backend.SignIn(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	uid, err := s.parse(tok)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()
	return uid, nil
}

// SignOut forgets the token.
func (s *TokenSession) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// CurrentUserID returns the subject of the held token while it is valid.
func (s *TokenSession) CurrentUserID() (string, bool) {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()
	if tok == "" {
		return "", false
	}
	uid, err := s.parse(tok)
	if err != nil {
		return "", false
	}
	return uid, true
}

// parse validates an HS256 token and returns the subject.
func (s *TokenSession) parse(tok string) (string, error) {
	t, err := jwt.Parse(tok, func(t *jwt.Token) (any, error) {
		return s.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}
	mc, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	uid, _ := mc["sub"].(string)
	if uid == "" {
		return "", ErrNoSubject
	}
	return uid, nil
}

// IssueToken signs an HS256 token for sub that expires after ttl. Backends
// that mint their own tokens, and tests, use it.
func IssueToken(key []byte, sub string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sub,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
