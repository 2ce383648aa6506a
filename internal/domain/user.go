// Package domain contains core business types and interfaces.
//
// This file defines the User and Session types for API authentication.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that can query schedules and compliance reports.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string // bcrypt hash, never exposed over the API
	DisplayName  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an issued API session token.
type Session struct {
	Token     string // Opaque bearer token
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired returns true if the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// CreateUserParams contains validated parameters for registering a user.
type CreateUserParams struct {
	Email       string // Required, unique
	Password    string // Required, plaintext; hashed by the service
	DisplayName string // Optional
}

// LoginParams contains credentials for issuing a session.
type LoginParams struct {
	Email    string
	Password string
}
