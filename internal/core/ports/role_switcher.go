package ports

import (
	"context"

	"github.com/igilife/insurance-portal/internal/core/domain"
)

// RoleSwitcher is the user-initiated role change: engine and credential store
// are both rewritten, then the caller is sent back to the default landing
// view. Returns false when unauthenticated or the role is unknown.
type RoleSwitcher interface {
	SwitchRole(ctx context.Context, role domain.Role) bool
}
