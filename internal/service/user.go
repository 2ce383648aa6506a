// Package service contains the business logic layer.
//
// Services orchestrate interactions between repositories, the compliance
// engine, and external providers. They are responsible for:
// - Input validation
// - Business rule enforcement
// - Transaction coordination
// - Error translation (database errors -> domain errors)
package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/klinikwerk/shiftwarden/internal/domain"
	"github.com/klinikwerk/shiftwarden/internal/repository"
)

// =============================================================================
// Configuration Constants
// =============================================================================

const (
	// BcryptCost is the cost factor for bcrypt password hashing.
	// Cost 12 keeps hashing around 250ms on current hardware.
	BcryptCost = 12

	// SessionTokenBytes is the number of random bytes for session tokens.
	// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
	SessionTokenBytes = 32

	// MinPasswordLength is the minimum password length.
	MinPasswordLength = 8

	// MaxPasswordLength caps input before bcrypt's own 72-byte limit.
	MaxPasswordLength = 72
)

// =============================================================================
// Interface Definition
// =============================================================================

// UserService defines the interface for account and session operations.
type UserService interface {
	// Register creates a new user account.
	// Returns domain.ECONFLICT if email already exists.
	// Returns domain.EINVALID for validation errors.
	Register(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)

	// Login authenticates a user and issues a new session token.
	// Returns domain.EUNAUTHORIZED for invalid credentials.
	Login(ctx context.Context, params domain.LoginParams) (*domain.Session, error)

	// Logout invalidates a session by its token. Idempotent.
	Logout(ctx context.Context, token string) error

	// VerifySession resolves a session token to its user.
	// Returns domain.EUNAUTHORIZED if the token is unknown or expired.
	VerifySession(ctx context.Context, token string) (*domain.User, error)

	// DeleteExpiredSessions removes all expired sessions. Run periodically.
	DeleteExpiredSessions(ctx context.Context) error
}

// =============================================================================
// Implementation
// =============================================================================

type userService struct {
	queries    *repository.Queries
	sessionTTL time.Duration
	logger     *slog.Logger
}

// NewUserService creates a new UserService instance.
func NewUserService(queries *repository.Queries, sessionTTL time.Duration, logger *slog.Logger) UserService {
	return &userService{
		queries:    queries,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Register creates a new user account.
//
// The raw password is hashed with bcrypt and never logged or stored. To blunt
// timing probes, the password is hashed even when the email is already taken.
func (s *userService) Register(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	const op = "UserService.Register"

	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.DisplayName = strings.TrimSpace(params.DisplayName)

	if err := validateEmail(params.Email); err != nil {
		return nil, domain.Invalid(op, "Invalid email address")
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, domain.Invalid(op, err.Error())
	}

	_, err := s.queries.GetUserByEmail(ctx, params.Email)
	if err == nil {
		_, _ = bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
		return nil, domain.Conflict(op, "Email already registered")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err, op, "Failed to check email availability")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to hash password")
	}

	row, err := s.queries.CreateUser(ctx, repository.CreateUserParams{
		Email:        params.Email,
		PasswordHash: string(passwordHash),
		DisplayName:  params.DisplayName,
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to create user")
	}

	s.logger.Info("user registered", "user_id", row.ID, "email", row.Email)

	user := toDomainUser(row)
	return &user, nil
}

// Login authenticates a user and issues a new session token.
func (s *userService) Login(ctx context.Context, params domain.LoginParams) (*domain.Session, error) {
	const op = "UserService.Login"

	email := strings.ToLower(strings.TrimSpace(params.Email))

	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a comparison so unknown emails cost the same as bad passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(params.Password))
			return nil, domain.Unauthorized(op, "Invalid email or password")
		}
		return nil, domain.Internal(err, op, "Failed to look up user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(params.Password)); err != nil {
		return nil, domain.Unauthorized(op, "Invalid email or password")
	}

	token, err := generateSessionToken()
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to generate session token")
	}

	sess, err := s.queries.CreateSession(ctx, repository.CreateSessionParams{
		Token:     token,
		UserID:    row.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	})
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to create session")
	}

	s.logger.Info("user logged in", "user_id", row.ID)

	return &domain.Session{
		Token:     sess.Token,
		UserID:    sess.UserID,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
	}, nil
}

// Logout invalidates a session by its token.
func (s *userService) Logout(ctx context.Context, token string) error {
	const op = "UserService.Logout"

	if token == "" {
		return nil
	}
	if err := s.queries.DeleteSession(ctx, token); err != nil {
		return domain.Internal(err, op, "Failed to delete session")
	}
	return nil
}

// VerifySession resolves a session token to its user.
func (s *userService) VerifySession(ctx context.Context, token string) (*domain.User, error) {
	const op = "UserService.VerifySession"

	if token == "" {
		return nil, domain.Unauthorized(op, "Session token required")
	}

	sess, err := s.queries.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Unauthorized(op, "Invalid session")
		}
		return nil, domain.Internal(err, op, "Failed to look up session")
	}

	session := domain.Session{Token: sess.Token, UserID: sess.UserID, ExpiresAt: sess.ExpiresAt, CreatedAt: sess.CreatedAt}
	if session.IsExpired() {
		// Expired tokens are cleaned up lazily here and in bulk by the
		// periodic DeleteExpiredSessions sweep.
		_ = s.queries.DeleteSession(ctx, token)
		return nil, domain.Unauthorized(op, "Session expired")
	}

	row, err := s.queries.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.Unauthorized(op, "Invalid session")
		}
		return nil, domain.Internal(err, op, "Failed to look up user")
	}

	user := toDomainUser(row)
	return &user, nil
}

// DeleteExpiredSessions removes all expired sessions.
func (s *userService) DeleteExpiredSessions(ctx context.Context) error {
	const op = "UserService.DeleteExpiredSessions"

	count, err := s.queries.DeleteExpiredSessions(ctx)
	if err != nil {
		return domain.Internal(err, op, "Failed to delete expired sessions")
	}
	if count > 0 {
		s.logger.Info("expired sessions deleted", "count", count)
	}
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

// dummyHash is a valid bcrypt hash of an unguessable value, used to equalize
// login timing when the email is unknown.
var dummyHash = []byte("$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW")

func toDomainUser(row repository.User) domain.User {
	return domain.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		DisplayName:  row.DisplayName,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

// generateSessionToken returns a cryptographically random hex token.
func generateSessionToken() (string, error) {
	buf := make([]byte, SessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// validateEmail performs a minimal syntactic check.
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return errors.New("email is malformed")
	}
	return nil
}

// validatePassword enforces length bounds.
func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return errors.New("password must be at most 72 characters")
	}
	return nil
}
