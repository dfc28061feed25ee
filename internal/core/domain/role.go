package domain

// Role identifies the authorization tier of a principal.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleAgent Role = "agent"
	RoleUser  Role = "user"
)

// Roles lists every role in declaration order. The order is part of the
// contract: AvailableRoles and role-switch UIs render it as-is.
var Roles = []Role{RoleAdmin, RoleAgent, RoleUser}

// IsValidRole reports whether r is one of the declared roles.
func IsValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleAgent, RoleUser:
		return true
	}
	return false
}

// Permission is a single independent capability gating an action category.
// Permissions are a closed set; references are checked at compile time and
// inbound strings must go through ParsePermission.
type Permission string

const (
	PermCreatePolicies Permission = "canCreatePolicies"
	PermEditPolicies   Permission = "canEditPolicies"
	PermDeletePolicies Permission = "canDeletePolicies"
	PermViewAllClients Permission = "canViewAllClients"
	PermManageUsers    Permission = "canManageUsers"
	PermViewReports    Permission = "canViewReports"
	PermProcessClaims  Permission = "canProcessClaims"
	PermManageSettings Permission = "canManageSettings"
)

// Permissions lists every permission in declaration order.
var Permissions = []Permission{
	PermCreatePolicies,
	PermEditPolicies,
	PermDeletePolicies,
	PermViewAllClients,
	PermManageUsers,
	PermViewReports,
	PermProcessClaims,
	PermManageSettings,
}

// ParsePermission converts an inbound permission name to its typed value.
// Unknown names return ErrUnknownPermission rather than a silent false.
func ParsePermission(s string) (Permission, error) {
	for _, p := range Permissions {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrUnknownPermission
}

// PermissionSet maps each capability to granted/denied. Every RoleConfig
// carries a total set covering all eight permissions.
type PermissionSet map[Permission]bool

// Service identifiers used in per-role allow-lists.
const (
	ServiceDashboard  = "dashboard"
	ServicePolicies   = "policies"
	ServiceMyPolicies = "my-policies"
	ServiceClients    = "clients"
	ServiceClaims     = "claims"
	ServiceReports    = "reports"
	ServiceUsers      = "users"
	ServiceSettings   = "settings"
	ServiceProfile    = "profile"
)

// RoleConfig bundles everything derived from a role: display metadata, the
// permission set, and the allow-list of accessible service areas.
type RoleConfig struct {
	Role            Role          `json:"role"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Permissions     PermissionSet `json:"permissions"`
	AllowedServices []string      `json:"allowedServices"`
}

// roleConfigs is the static derivation table, one entry per role, defined at
// process start and never mutated. Admin and agent overlap without nesting:
// claims processing belongs to agents, user administration to admins.
var roleConfigs = map[Role]RoleConfig{
	RoleAdmin: {
		Role:        RoleAdmin,
		Title:       "Administrator",
		Description: "Full portal administration: policies, users, and settings.",
		Permissions: PermissionSet{
			PermCreatePolicies: true,
			PermEditPolicies:   true,
			PermDeletePolicies: true,
			PermViewAllClients: true,
			PermManageUsers:    true,
			PermViewReports:    true,
			PermProcessClaims:  false,
			PermManageSettings: true,
		},
		AllowedServices: []string{
			ServiceDashboard,
			ServicePolicies,
			ServiceClients,
			ServiceClaims,
			ServiceReports,
			ServiceUsers,
			ServiceSettings,
			ServiceProfile,
		},
	},
	RoleAgent: {
		Role:        RoleAgent,
		Title:       "Insurance Agent",
		Description: "Sells and services policies, manages own client book and claims.",
		Permissions: PermissionSet{
			PermCreatePolicies: true,
			PermEditPolicies:   true,
			PermDeletePolicies: false,
			PermViewAllClients: true,
			PermManageUsers:    false,
			PermViewReports:    true,
			PermProcessClaims:  true,
			PermManageSettings: false,
		},
		AllowedServices: []string{
			ServiceDashboard,
			ServicePolicies,
			ServiceClients,
			ServiceClaims,
			ServiceReports,
			ServiceProfile,
		},
	},
	RoleUser: {
		Role:        RoleUser,
		Title:       "Policy Holder",
		Description: "Views own policies and submits claims.",
		Permissions: PermissionSet{
			PermCreatePolicies: false,
			PermEditPolicies:   false,
			PermDeletePolicies: false,
			PermViewAllClients: false,
			PermManageUsers:    false,
			PermViewReports:    false,
			PermProcessClaims:  false,
			PermManageSettings: false,
		},
		AllowedServices: []string{
			ServiceDashboard,
			ServiceMyPolicies,
			ServiceClaims,
			ServiceProfile,
		},
	},
}

// ConfigFor returns the RoleConfig for r. Unknown roles fall back to the
// least-privileged config so a corrupted role value never widens access.
func ConfigFor(r Role) RoleConfig {
	if cfg, ok := roleConfigs[r]; ok {
		return cfg
	}
	return roleConfigs[RoleUser]
}

// AllRoleConfigs returns the full table in declaration order.
func AllRoleConfigs() []RoleConfig {
	out := make([]RoleConfig, 0, len(Roles))
	for _, r := range Roles {
		out = append(out, roleConfigs[r])
	}
	return out
}
