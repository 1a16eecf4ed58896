package auth

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/splitledger/internal/models"
)

var currentUser = models.User{ID: "u1", Name: "Sagar Patel", Email: "sagar@example.com"}

func setupSessions(t *testing.T) (*Sessions, *[]time.Duration) {
	t.Helper()
	tokens := NewTokenManager("test-secret-that-is-long-enough!!", time.Hour)
	s := NewSessions(currentUser, time.Second, tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, &slept
}

func TestLogin(t *testing.T) {
	s, slept := setupSessions(t)

	session, err := s.Login("someone@example.com", "anything")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if len(*slept) != 1 || (*slept)[0] != time.Second {
		t.Errorf("slept %v, want one fixed delay of 1s", *slept)
	}
	if session.User.ID != currentUser.ID || session.User.Email != "someone@example.com" {
		t.Errorf("session user = %+v, want current user with login email", session.User)
	}
	if s.Current() != session {
		t.Error("Current() does not return the new session")
	}

	claims, err := s.Authenticated(session.Token)
	if err != nil {
		t.Fatalf("Authenticated failed: %v", err)
	}
	if claims.UserID() != currentUser.ID || claims.Name != currentUser.Name || claims.Email != "someone@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginRequiresCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"empty email", "", "secret"},
		{"blank email", "   ", "secret"},
		{"empty password", "a@example.com", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, slept := setupSessions(t)
			if _, err := s.Login(tt.email, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("Login error = %v, want ErrInvalidCredentials", err)
			}
			if len(*slept) != 0 {
				t.Error("rejected login should not wait")
			}
		})
	}
}

func TestLogout(t *testing.T) {
	s, _ := setupSessions(t)
	session, err := s.Login("sagar@example.com", "pw")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	s.Logout()
	s.Logout()

	if s.Current() != nil {
		t.Error("expected no session after logout")
	}
	if _, err := s.Authenticated(session.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Authenticated after logout error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManager(t *testing.T) {
	m := NewTokenManager("test-secret-that-is-long-enough!!", time.Hour)
	token, err := m.Generate(currentUser)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := m.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Errorf("empty token error = %v, want ErrMissingToken", err)
	}

	other := NewTokenManager("a-different-secret-of-some-length", time.Hour)
	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret error = %v, want ErrInvalidToken", err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestTokenManagerRejectsForeignTokens(t *testing.T) {
	const secret = "test-secret-that-is-long-enough!!"
	m := NewTokenManager(secret, time.Hour)
	now := time.Now()

	sign := func(method jwt.SigningMethod, claims jwt.RegisteredClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(method, &Claims{RegisteredClaims: claims}).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		return token
	}
	expires := jwt.NewNumericDate(now.Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"other issuer", sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: "elsewhere", Subject: "u1", ExpiresAt: expires})},
		{"no expiry", sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: issuer, Subject: "u1"})},
		{"no subject", sign(jwt.SigningMethodHS256, jwt.RegisteredClaims{Issuer: issuer, ExpiresAt: expires})},
		{"other method", sign(jwt.SigningMethodHS512, jwt.RegisteredClaims{Issuer: issuer, Subject: "u1", ExpiresAt: expires})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
