package v1

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/catalog-service/internal/core/domain"
	"github.com/duynhne/catalog-service/middleware"
)

// AuthService implements registration, credential verification and
// session issuance. It depends on repository interfaces (injected via
// constructor) and holds no state of its own.
type AuthService struct {
	users    domain.UserRepository
	sessions domain.SessionRepository
	tokens   *TokenService
}

// NewAuthService creates a new AuthService with the given dependencies.
func NewAuthService(users domain.UserRepository, sessions domain.SessionRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Register creates a new user with the given credentials. Usernames are
// unique process-wide; the repository arbitrates concurrent duplicates.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) error {
	ctx, span := middleware.StartSpan(ctx, "auth.register", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", creds.Username),
	))
	defer span.End()

	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("register: %w", ErrMissingCredentials)
	}

	created, err := s.users.Create(ctx, creds.Username, creds.Password)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("insert user %q: %w", creds.Username, err)
	}
	if !created {
		span.SetAttributes(attribute.Bool("registration.success", false))
		return fmt.Errorf("register user %q: %w", creds.Username, ErrUserExists)
	}

	span.SetAttributes(attribute.Bool("registration.success", true))
	span.AddEvent("user.registered")
	return nil
}

// Login verifies the credentials, mints a session token and binds it in
// the session carrier under the caller's session identity.
// callerSessionID is the caller's existing identity (the session cookie
// value) or "" for a first-time caller, who gets a fresh one. Binding
// under the existing identity overwrites any prior login for that
// caller — sessions never stack, and a stale cookie cannot keep
// authorizing as a previous principal.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials, callerSessionID string) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.login", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("username", creds.Username),
	))
	defer span.End()

	// Presence check comes first; a missing field is never reported as
	// an invalid credential and never reaches the registry.
	if creds.Username == "" || creds.Password == "" {
		return "", fmt.Errorf("login: %w", ErrMissingCredentials)
	}

	user, err := s.users.Find(ctx, creds.Username)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("query user %q: %w", creds.Username, err)
	}
	// Plaintext comparison, placeholder for a salted-hash check. The
	// unknown-user and wrong-password cases collapse into one error.
	if user == nil || user.Password != creds.Password {
		span.SetAttributes(attribute.Bool("auth.success", false))
		span.AddEvent("authentication.failed")
		return "", fmt.Errorf("authenticate user %q: %w", creds.Username, ErrInvalidCredentials)
	}

	token, err := s.tokens.Mint(user.Username)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("mint session token: %w", err)
	}

	sessionID := callerSessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	session := domain.Session{
		ID:       sessionID,
		Username: user.Username,
		Token:    token,
	}
	if err := s.sessions.Bind(ctx, session); err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("bind session: %w", err)
	}

	span.SetAttributes(attribute.Bool("auth.success", true))
	span.AddEvent("user.authenticated")
	return sessionID, nil
}

// CurrentPrincipal resolves the caller-session ID to the bound
// username. A missing binding, a malformed token or an elapsed expiry
// claim all report ErrUnauthenticated — a stale carrier entry for an
// expired token reads as no session.
func (s *AuthService) CurrentPrincipal(ctx context.Context, sessionID string) (string, error) {
	ctx, span := middleware.StartSpan(ctx, "auth.current_principal", trace.WithAttributes(
		attribute.String("layer", "logic"),
	))
	defer span.End()

	if sessionID == "" {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return "", fmt.Errorf("resolve session: %w", ErrUnauthenticated)
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("query session: %w", err)
	}
	if session == nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		return "", fmt.Errorf("resolve session: %w", ErrUnauthenticated)
	}

	username, err := s.tokens.Principal(session.Token)
	if err != nil {
		span.SetAttributes(attribute.Bool("session.valid", false))
		span.AddEvent("session.expired_or_invalid")
		return "", fmt.Errorf("resolve session: %w", ErrUnauthenticated)
	}

	span.SetAttributes(
		attribute.String("user.name", username),
		attribute.Bool("session.valid", true),
	)
	return username, nil
}
