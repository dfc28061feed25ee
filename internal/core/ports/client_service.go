package ports

import (
	"context"

	"github.com/igilife/insurance-portal/internal/core/domain"
)

// CreateClientInput carries all data needed to register a client record.
type CreateClientInput struct {
	Name       string
	NationalID string
	Contact    string
	Email      string
	Address    string
	AgentID    string
}

// ClientUpdate carries the optional fields of a client mutation. Nil fields
// are left untouched.
type ClientUpdate struct {
	Name       *string
	NationalID *string
	Contact    *string
	Email      *string
	Address    *string
	AgentID    *string
}

// ClientService is CRUD over the client collection. Same persistence
// discipline as the auth core, independent lifecycle: no uniqueness beyond
// id and no referential check on AgentID.
type ClientService interface {
	Add(ctx context.Context, input CreateClientInput) (domain.Client, bool)
	Update(ctx context.Context, id string, update ClientUpdate) bool
	Delete(ctx context.Context, id string) bool
	List(ctx context.Context) []domain.Client

	// Search filters List by case-insensitive substring match over name,
	// email, national id, and contact.
	Search(ctx context.Context, query string) []domain.Client
}
