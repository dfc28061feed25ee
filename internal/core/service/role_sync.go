package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// RoleSync keeps the access engine's active role aligned with the session's
// role. The session is authoritative: whenever the two diverge, the engine
// is overwritten. Reconciliation runs synchronously from the session
// manager's change hook, so there is no observer loop and no per-poll work.
type RoleSync struct {
	manager  ports.SessionManager
	engine   ports.AccessEngine
	notifier ports.Notifier
	navigate ports.NavigateFunc
	initial  domain.Role
	log      zerolog.Logger
}

// NewRoleSync wires the synchronizer and registers it on the manager's
// session-change hook. initial is the role the engine falls back to when the
// session ends.
func NewRoleSync(
	manager ports.SessionManager,
	engine ports.AccessEngine,
	notifier ports.Notifier,
	navigate ports.NavigateFunc,
	initial domain.Role,
	log zerolog.Logger,
) *RoleSync {
	rs := &RoleSync{
		manager:  manager,
		engine:   engine,
		notifier: notifier,
		navigate: navigate,
		initial:  initial,
		log:      log,
	}
	manager.OnSessionChange(rs.reconcile)
	// A session restored before wiring never fired the hook; align once now.
	rs.reconcile(manager.CurrentUser())
	return rs
}

// reconcile is invoked after every session identity or role change.
func (rs *RoleSync) reconcile(user *domain.User) {
	if user == nil {
		if cur := rs.engine.CurrentRole(); cur != rs.initial {
			rs.engine.SetRole(rs.initial)
			rs.log.Debug().Str("role", string(rs.initial)).Msg("engine reset after session end")
		}
		return
	}
	if cur := rs.engine.CurrentRole(); cur != user.Role {
		rs.engine.SetRole(user.Role)
		rs.log.Info().
			Str("from", string(cur)).
			Str("to", string(user.Role)).
			Msg("engine role reconciled to session")
	}
}

// SwitchRole is the user-initiated role change: both the engine and the
// credential store are rewritten, then the caller is navigated back to the
// default landing view. A crash between the two writes leaves the pair
// divergent until the next reconcile corrects it (session wins).
func (rs *RoleSync) SwitchRole(ctx context.Context, role domain.Role) bool {
	if !domain.IsValidRole(role) {
		return false
	}
	if rs.manager.CurrentUser() == nil {
		return false
	}

	rs.engine.SetRole(role)
	rs.manager.UpdateUserRole(ctx, role)

	cfg := domain.ConfigFor(role)
	if rs.notifier != nil {
		rs.notifier.Notify(ports.Notification{
			Title:       "Role switched",
			Description: "You are now acting as " + cfg.Title + ".",
			Severity:    ports.SeveritySuccess,
		})
	}
	if rs.navigate != nil {
		rs.navigate(domain.ServiceDashboard)
	}
	return true
}
