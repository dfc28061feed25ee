package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
	"github.com/igilife/insurance-portal/internal/infrastructure/store/memory"
)

type recordingNotifier struct {
	notes []ports.Notification
}

func (n *recordingNotifier) Notify(note ports.Notification) {
	n.notes = append(n.notes, note)
}

type syncFixture struct {
	manager  *SessionManager
	engine   *AccessEngine
	sync     *RoleSync
	notifier *recordingNotifier
	views    []string
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	f := &syncFixture{notifier: &recordingNotifier{}}

	f.manager = NewSessionManager(memory.New(), zerolog.Nop())
	if err := f.manager.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	f.engine = NewAccessEngine(domain.RoleUser)
	f.sync = NewRoleSync(
		f.manager,
		f.engine,
		f.notifier,
		func(viewID string) { f.views = append(f.views, viewID) },
		domain.RoleUser,
		zerolog.Nop(),
	)
	return f
}

func TestRoleSync_ReconcilesOnLogin(t *testing.T) {
	f := newSyncFixture(t)

	if !f.manager.Login(context.Background(), "admin@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	if f.engine.CurrentRole() != domain.RoleAdmin {
		t.Fatalf("engine not reconciled to session role: %s", f.engine.CurrentRole())
	}
}

func TestRoleSync_ResetsOnLogout(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	if !f.manager.Login(ctx, "admin@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	f.manager.Logout(ctx)
	if f.engine.CurrentRole() != domain.RoleUser {
		t.Fatalf("engine not reset after logout: %s", f.engine.CurrentRole())
	}
}

func TestRoleSync_ReconcilesRestoredSession(t *testing.T) {
	store := memory.New()
	ctx := context.Background()

	m := NewSessionManager(store, zerolog.Nop())
	if err := m.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	// Restart: the restored session never fires the change hook, so the
	// constructor must align the engine itself.
	m2 := NewSessionManager(store, zerolog.Nop())
	if err := m2.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	engine := NewAccessEngine(domain.RoleUser)
	NewRoleSync(m2, engine, nil, nil, domain.RoleUser, zerolog.Nop())

	if engine.CurrentRole() != domain.RoleAgent {
		t.Fatalf("restored session not reconciled: %s", engine.CurrentRole())
	}
}

func TestRoleSync_SessionWinsOverEngine(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	if !f.manager.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	// Engine drifts (e.g. a crash mid role switch); the next session
	// mutation corrects it with the session's role.
	f.engine.SetRole(domain.RoleAdmin)
	f.manager.UpdateUserRole(ctx, domain.RoleAgent)

	if f.engine.CurrentRole() != domain.RoleAgent {
		t.Fatalf("session role did not win: %s", f.engine.CurrentRole())
	}
}

func TestSwitchRole_AgentToUser(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	if !f.manager.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	if !f.engine.CanAccessService(domain.ServiceClients) {
		t.Fatalf("agent should access clients before the switch")
	}

	if !f.sync.SwitchRole(ctx, domain.RoleUser) {
		t.Fatalf("switch failed")
	}

	if f.engine.CurrentRole() != domain.RoleUser {
		t.Fatalf("engine role not switched: %s", f.engine.CurrentRole())
	}
	for _, u := range f.manager.Users(ctx) {
		if u.ID == "2" && u.Role != domain.RoleUser {
			t.Fatalf("credential record not switched: %s", u.Role)
		}
	}
	if f.engine.CanAccessService(domain.ServiceClients) {
		t.Fatalf("clients must be denied after switching to user")
	}
}

func TestSwitchRole_NavigatesAndNotifies(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	if !f.manager.Login(ctx, "admin@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	if !f.sync.SwitchRole(ctx, domain.RoleAgent) {
		t.Fatalf("switch failed")
	}

	if len(f.views) == 0 || f.views[len(f.views)-1] != domain.ServiceDashboard {
		t.Fatalf("expected navigation to dashboard, got %v", f.views)
	}
	if len(f.notifier.notes) == 0 {
		t.Fatalf("expected a notification")
	}
}

func TestSwitchRole_Guards(t *testing.T) {
	f := newSyncFixture(t)
	ctx := context.Background()

	if f.sync.SwitchRole(ctx, domain.RoleAdmin) {
		t.Fatalf("switch without a session must fail")
	}
	if !f.manager.Login(ctx, "admin@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	if f.sync.SwitchRole(ctx, domain.Role("superuser")) {
		t.Fatalf("unknown role must fail")
	}
}
