package ports

import "github.com/igilife/insurance-portal/internal/core/domain"

// AccessEngine derives permissions and service access from the active role.
// Pure table lookups over the static role-config table; every answer for a
// given role is deterministic.
type AccessEngine interface {
	// CurrentRole returns the active role.
	CurrentRole() domain.Role

	// SetRole unconditionally switches the active role. Switching to the
	// current role is a harmless identity transition.
	SetRole(role domain.Role)

	// HasPermission reports whether the active role grants p.
	HasPermission(p domain.Permission) bool

	// CanAccessService reports whether serviceID is on the active role's
	// allow-list. Unknown identifiers are always denied.
	CanAccessService(serviceID string) bool

	// AvailableRoles returns the full static table in declaration order.
	AvailableRoles() []domain.RoleConfig
}
