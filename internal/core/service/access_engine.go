package service

import (
	"sync"

	"github.com/igilife/insurance-portal/internal/core/domain"
)

// AccessEngine answers permission and service-access queries for the active
// role. Derivation is a static table lookup; the engine holds only the
// current role and lives for the process lifetime.
type AccessEngine struct {
	mu   sync.RWMutex
	role domain.Role
}

func NewAccessEngine(initial domain.Role) *AccessEngine {
	return &AccessEngine{role: initial}
}

func (e *AccessEngine) CurrentRole() domain.Role {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.role
}

// SetRole unconditionally overwrites the active role. A switch to the same
// role is an identity transition.
func (e *AccessEngine) SetRole(role domain.Role) {
	e.mu.Lock()
	e.role = role
	e.mu.Unlock()
}

func (e *AccessEngine) HasPermission(p domain.Permission) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return domain.ConfigFor(e.role).Permissions[p]
}

// CanAccessService is a membership test against the active role's allow-list.
// Identifiers absent from every list are always denied; there is no wildcard.
func (e *AccessEngine) CanAccessService(serviceID string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, s := range domain.ConfigFor(e.role).AllowedServices {
		if s == serviceID {
			return true
		}
	}
	return false
}

func (e *AccessEngine) AvailableRoles() []domain.RoleConfig {
	return domain.AllRoleConfigs()
}
