// Package auth provides the placeholder login used by the client session.
//
// Login accepts any non-empty credentials after a fixed delay that stands in
// for a future network round-trip. It is not an authentication mechanism.
package auth

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrInvalidCredentials is returned when the email or password is empty.
var ErrInvalidCredentials = errors.New("email and password required")

// Session is the signed-in state of the client.
type Session struct {
	User  models.User
	Token string
}

// Sessions holds at most one signed-in user.
type Sessions struct {
	user   models.User
	delay  time.Duration
	tokens *TokenManager
	logger *slog.Logger
	sleep  func(time.Duration)

	current *Session
}

// NewSessions creates a session holder that signs everyone in as user.
// delay is how long Login waits before resolving.
func NewSessions(user models.User, delay time.Duration, tokens *TokenManager, logger *slog.Logger) *Sessions {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sessions{
		user:   user,
		delay:  delay,
		tokens: tokens,
		logger: logger,
		sleep:  time.Sleep,
	}
}

// Login waits for the configured delay, then signs in the session user with
// the given email. It cannot be cancelled and always resolves.
func (s *Sessions) Login(email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login request", "email", email)
	s.sleep(s.delay)

	user := s.user
	user.Email = email

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}

	s.current = &Session{User: user, Token: token}
	s.logger.Info("User logged in", "user_id", user.ID, "email", email)
	return s.current, nil
}

// Logout clears the current session. Logging out twice is harmless.
func (s *Sessions) Logout() {
	if s.current != nil {
		s.logger.Info("User logged out", "user_id", s.current.User.ID)
	}
	s.current = nil
}

// Current returns the signed-in session, or nil.
func (s *Sessions) Current() *Session {
	return s.current
}

// Authenticated reports whether token belongs to the current session.
func (s *Sessions) Authenticated(token string) (*Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}
	if s.current == nil || s.current.User.ID != claims.UserID() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
