package service

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
	"github.com/igilife/insurance-portal/internal/infrastructure/store/memory"
)

func newTestManager(t *testing.T) (*SessionManager, *memory.Store) {
	t.Helper()
	store := memory.New()
	m := NewSessionManager(store, zerolog.Nop())
	if err := m.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	return m, store
}

func TestBootstrap_SeedsThreeUsers(t *testing.T) {
	m, _ := newTestManager(t)

	users := m.Users(context.Background())
	if len(users) != 3 {
		t.Fatalf("expected 3 seeded users, got %d", len(users))
	}
	roles := map[domain.Role]bool{}
	for _, u := range users {
		roles[u.Role] = true
	}
	for _, r := range domain.Roles {
		if !roles[r] {
			t.Fatalf("seed missing role %s", r)
		}
	}
}

func TestBootstrap_DoesNotReseed(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.CreateUser(ctx, ports.CreateUserInput{
		Name: "Extra", Email: "extra@igilife.com", Secret: "secret123", Role: domain.RoleUser,
	}) {
		t.Fatalf("create failed")
	}

	// Simulate restart against the same store.
	m2 := NewSessionManager(store, zerolog.Nop())
	if err := m2.Bootstrap(ctx); err != nil {
		t.Fatalf("second bootstrap failed: %v", err)
	}
	if got := len(m2.Users(ctx)); got != 4 {
		t.Fatalf("expected 4 users after restart, got %d", got)
	}
}

func TestLogin_SeededAdmin(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "admin@igilife.com", "password123") {
		t.Fatalf("seeded admin login failed")
	}
	u := m.CurrentUser()
	if u == nil || u.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", u)
	}
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	m, _ := newTestManager(t)

	if !m.Login(context.Background(), "Admin@IGILife.com", "password123") {
		t.Fatalf("case-insensitive email lookup failed")
	}
}

func TestLogin_Failures(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if m.Login(ctx, "ghost@igilife.com", "password123") {
		t.Fatalf("unknown email must fail")
	}
	if m.Login(ctx, "admin@igilife.com", "wrongpass") {
		t.Fatalf("wrong secret must fail")
	}
	if m.CurrentUser() != nil {
		t.Fatalf("failed logins must not create a session")
	}
}

func TestLogin_EmptyStore(t *testing.T) {
	m := NewSessionManager(memory.New(), zerolog.Nop())
	if m.Login(context.Background(), "admin@igilife.com", "password123") {
		t.Fatalf("login against empty store must fail")
	}
}

func TestLogin_PersistedSessionHasNoSecret(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	raw, ok, err := store.Read(ctx, ports.KeySession)
	if err != nil || !ok {
		t.Fatalf("session not persisted: ok=%v err=%v", ok, err)
	}
	if strings.Contains(raw, "password") {
		t.Fatalf("persisted session leaks the secret: %s", raw)
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("session blob unreadable: %v", err)
	}
	if u.ID != "2" || u.Role != domain.RoleAgent {
		t.Fatalf("unexpected persisted session: %+v", u)
	}
}

func TestSession_SurvivesRestart(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	m2 := NewSessionManager(store, zerolog.Nop())
	if err := m2.Bootstrap(ctx); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	u := m2.CurrentUser()
	if u == nil || u.ID != "2" {
		t.Fatalf("session not restored: %+v", u)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "user@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	m.Logout(ctx)
	m.Logout(ctx)

	if m.CurrentUser() != nil {
		t.Fatalf("logout did not clear session")
	}
	if _, ok, _ := store.Read(ctx, ports.KeySession); ok {
		t.Fatalf("logout did not remove persisted session")
	}
}

func TestUpdateUserRole_WriteThrough(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	m.UpdateUserRole(ctx, domain.RoleUser)

	if got := m.CurrentUser().Role; got != domain.RoleUser {
		t.Fatalf("session role not updated: %s", got)
	}

	raw, _, _ := store.Read(ctx, ports.KeyUsers)
	var creds []domain.Credential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		t.Fatalf("users blob unreadable: %v", err)
	}
	for _, c := range creds {
		if c.ID == "2" && c.Role != domain.RoleUser {
			t.Fatalf("credential record role not updated: %s", c.Role)
		}
	}
}

func TestUpdateUserRole_Unauthenticated(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	before, _, _ := store.Read(ctx, ports.KeyUsers)
	m.UpdateUserRole(ctx, domain.RoleAdmin)
	after, _, _ := store.Read(ctx, ports.KeyUsers)
	if before != after {
		t.Fatalf("role update without session must be a no-op")
	}
}

func TestUpdateUserProfile_DuplicateEmailRejected(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	before, _, _ := store.Read(ctx, ports.KeyUsers)
	taken := "Admin@igilife.com" // different case, still a collision
	if m.UpdateUserProfile(ctx, ports.ProfileUpdate{Email: &taken}) {
		t.Fatalf("duplicate email must be rejected")
	}
	after, _, _ := store.Read(ctx, ports.KeyUsers)
	if before != after {
		t.Fatalf("rejected update must not mutate the store")
	}
	if got := m.CurrentUser().Email; got != "agent@igilife.com" {
		t.Fatalf("rejected update must not mutate the session: %s", got)
	}
}

func TestUpdateUserProfile_MergesBothCopies(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}

	name := "Imran Q."
	dept := "Bancassurance"
	if !m.UpdateUserProfile(ctx, ports.ProfileUpdate{Name: &name, Department: &dept}) {
		t.Fatalf("profile update failed")
	}

	u := m.CurrentUser()
	if u.Name != name || u.Department != dept {
		t.Fatalf("session not merged: %+v", u)
	}

	raw, _, _ := store.Read(ctx, ports.KeyUsers)
	var creds []domain.Credential
	_ = json.Unmarshal([]byte(raw), &creds)
	for _, c := range creds {
		if c.ID == "2" {
			if c.Name != name || c.Department != dept {
				t.Fatalf("credential record not merged: %+v", c.User)
			}
			if c.Secret != "password123" {
				t.Fatalf("profile update must not touch the secret")
			}
		}
	}
}

func TestUpdateUserProfile_KeepOwnEmail(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "agent@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	// Re-submitting the current email (any case) is not a collision.
	same := "AGENT@igilife.com"
	if !m.UpdateUserProfile(ctx, ports.ProfileUpdate{Email: &same}) {
		t.Fatalf("own email must not be rejected")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	ok := m.CreateUser(ctx, ports.CreateUserInput{
		Name: "Dup", Email: "ADMIN@igilife.com", Secret: "secret123", Role: domain.RoleUser,
	})
	if ok {
		t.Fatalf("duplicate email must be rejected")
	}
	if got := len(m.Users(ctx)); got != 3 {
		t.Fatalf("collection size changed on rejected create: %d", got)
	}
}

func TestCreateUser_FreshUniqueID(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if !m.CreateUser(ctx, ports.CreateUserInput{
		Name: "New Agent", Email: "new.agent@igilife.com", Secret: "secret123",
		Role: domain.RoleAgent, AgentID: "AGT-002",
	}) {
		t.Fatalf("create failed")
	}

	users := m.Users(ctx)
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}
	created := users[3] // append order
	if created.Email != "new.agent@igilife.com" || created.ID == "" {
		t.Fatalf("unexpected created user: %+v", created)
	}
	seen := map[string]bool{}
	for _, u := range users {
		if seen[u.ID] {
			t.Fatalf("duplicate id %s", u.ID)
		}
		seen[u.ID] = true
	}
}

func TestDeleteUser(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	if m.DeleteUser(ctx, "no-such-id") {
		t.Fatalf("deleting a missing id must fail")
	}
	if !m.DeleteUser(ctx, "3") {
		t.Fatalf("delete failed")
	}
	if got := len(m.Users(ctx)); got != 2 {
		t.Fatalf("expected 2 users, got %d", got)
	}
}

func TestDeleteUser_SessionOwnerLogsOut(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if !m.Login(ctx, "user@igilife.com", "password123") {
		t.Fatalf("login failed")
	}
	if !m.DeleteUser(ctx, "3") {
		t.Fatalf("delete failed")
	}
	if m.CurrentUser() != nil {
		t.Fatalf("deleting the session owner must log out")
	}
	if _, ok, _ := store.Read(ctx, ports.KeySession); ok {
		t.Fatalf("persisted session must be gone")
	}
}

func TestUsers_StripsSecretsInStorageOrder(t *testing.T) {
	m, _ := newTestManager(t)

	users := m.Users(context.Background())
	want := []string{"admin@igilife.com", "agent@igilife.com", "user@igilife.com"}
	for i, u := range users {
		if u.Email != want[i] {
			t.Fatalf("storage order broken at %d: %s", i, u.Email)
		}
	}
}
