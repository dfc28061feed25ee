package ports

import (
	"context"

	"github.com/igilife/insurance-portal/internal/core/domain"
)

// ProfileUpdate carries the optional fields of a profile mutation. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name       *string
	Email      *string
	Department *string
	AgentID    *string
	Avatar     *string
}

// CreateUserInput carries all data needed to register a new credential record.
type CreateUserInput struct {
	Name       string
	Email      string
	Secret     string
	Role       domain.Role
	Department string
	AgentID    string
	Avatar     string
}

// SessionListener is invoked synchronously after every session identity or
// role change. user is nil after logout. Listeners must not call back into
// the manager's mutating operations.
type SessionListener func(user *domain.User)

// SessionManager owns the credential store and the persisted session.
// All operations have boolean outcomes: validation rejections, not-found, and
// storage failures alike surface as false, never as a fault at the caller.
type SessionManager interface {
	// CurrentUser returns the authenticated principal, secret-stripped, or
	// nil when unauthenticated.
	CurrentUser() *domain.User

	// Login authenticates by case-insensitive email and exact secret match.
	Login(ctx context.Context, email, secret string) bool

	// Logout clears the session. Idempotent.
	Logout(ctx context.Context)

	// UpdateUserRole rewrites the session role and the matching credential
	// record, keeping both copies consistent. No-op when unauthenticated.
	UpdateUserRole(ctx context.Context, role domain.Role)

	// UpdateUserProfile merges the partial update into both the credential
	// record and the session. Rejects duplicate emails.
	UpdateUserProfile(ctx context.Context, update ProfileUpdate) bool

	// CreateUser appends a new credential record with a fresh unique id.
	// Rejects duplicate emails.
	CreateUser(ctx context.Context, input CreateUserInput) bool

	// Users returns every record in storage order, secrets stripped.
	Users(ctx context.Context) []domain.User

	// DeleteUser removes the matching record, logging out as a side effect
	// when the deleted id owns the active session.
	DeleteUser(ctx context.Context, id string) bool

	// OnSessionChange registers the listener notified after session changes.
	OnSessionChange(fn SessionListener)
}
