package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// seedCredentials is written once when the users key is absent, so a fresh
// store is never observed empty. One account per role, demo secrets.
var seedCredentials = []domain.Credential{
	{
		User: domain.User{
			ID:         "1",
			Name:       "Sarah Malik",
			Email:      "admin@igilife.com",
			Role:       domain.RoleAdmin,
			Department: "Administration",
		},
		Secret: "password123",
	},
	{
		User: domain.User{
			ID:      "2",
			Name:    "Imran Qureshi",
			Email:   "agent@igilife.com",
			Role:    domain.RoleAgent,
			AgentID: "AGT-001",
		},
		Secret: "password123",
	},
	{
		User: domain.User{
			ID:    "3",
			Name:  "Ali Raza",
			Email: "user@igilife.com",
			Role:  domain.RoleUser,
		},
		Secret: "password123",
	},
}

// SessionManager implements ports.SessionManager over a KVStore.
//
// The credential collection and the session are mutated only through these
// methods, which preserves the write-through invariant between the two copies
// of role and email. A single mutex serializes operations since the HTTP
// layer drives this from multiple goroutines.
type SessionManager struct {
	store ports.KVStore
	log   zerolog.Logger

	mu       sync.Mutex
	session  *domain.User
	listener ports.SessionListener
}

func NewSessionManager(store ports.KVStore, log zerolog.Logger) *SessionManager {
	return &SessionManager{store: store, log: log}
}

// Bootstrap seeds the credential collection when absent and restores any
// persisted session. Must run before the first read is served.
func (m *SessionManager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok, err := m.store.Read(ctx, ports.KeyUsers)
	if err != nil {
		return err
	}
	if !ok {
		if err := m.saveCredentials(ctx, seedCredentials); err != nil {
			return err
		}
		m.log.Info().Int("count", len(seedCredentials)).Msg("seeded credential store")
	}

	raw, ok, err := m.store.Read(ctx, ports.KeySession)
	if err != nil {
		return err
	}
	if ok {
		var u domain.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			// Corrupt session blob: treat as unauthenticated rather than fail startup.
			m.log.Warn().Err(err).Msg("discarding unreadable session record")
			_ = m.store.Remove(ctx, ports.KeySession)
			return nil
		}
		m.session = &u
		m.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("restored session")
	}
	return nil
}

// OnSessionChange registers the listener invoked synchronously after the
// session identity or its role changes. The listener receives nil on logout.
func (m *SessionManager) OnSessionChange(fn ports.SessionListener) {
	m.mu.Lock()
	m.listener = fn
	m.mu.Unlock()
}

// CurrentUser returns a copy of the authenticated principal, or nil.
func (m *SessionManager) CurrentUser() *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneUser(m.session)
}

// Login authenticates by case-insensitive email and exact secret equality.
// Unknown email and wrong secret fail identically; the caller learns only
// true or false.
func (m *SessionManager) Login(ctx context.Context, email, secret string) bool {
	m.mu.Lock()

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("login: credential store unreadable")
		return false
	}

	var match *domain.Credential
	matches := 0
	for i := range creds {
		if strings.EqualFold(creds[i].Email, email) {
			match = &creds[i]
			matches++
		}
	}
	if matches != 1 || match.Secret != secret {
		m.mu.Unlock()
		m.log.Debug().Str("email", email).Msg("login rejected")
		return false
	}

	u := match.Public()
	if err := m.saveSession(ctx, &u); err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("login: session write failed")
		return false
	}
	m.session = &u
	snapshot := cloneUser(m.session)
	m.mu.Unlock()

	m.log.Info().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("login")
	m.emit(snapshot)
	return true
}

// Logout clears the in-memory session and removes the persisted session key.
// Idempotent: logging out while unauthenticated is a no-op.
func (m *SessionManager) Logout(ctx context.Context) {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}
	id := m.session.ID
	m.session = nil
	if err := m.store.Remove(ctx, ports.KeySession); err != nil {
		m.log.Error().Err(err).Msg("logout: session remove failed")
	}
	m.mu.Unlock()

	m.log.Info().Str("user_id", id).Msg("logout")
	m.emit(nil)
}

// UpdateUserRole rewrites both the session and the matching credential record
// with the new role. No-op when unauthenticated.
func (m *SessionManager) UpdateUserRole(ctx context.Context, role domain.Role) {
	m.mu.Lock()
	if m.session == nil {
		m.mu.Unlock()
		return
	}

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("role update: credential store unreadable")
		return
	}
	for i := range creds {
		if creds[i].ID == m.session.ID {
			creds[i].Role = role
		}
	}
	if err := m.saveCredentials(ctx, creds); err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("role update: credential write failed")
		return
	}

	updated := *m.session
	updated.Role = role
	if err := m.saveSession(ctx, &updated); err != nil {
		m.log.Error().Err(err).Msg("role update: session write failed")
	}
	m.session = &updated
	snapshot := cloneUser(m.session)
	m.mu.Unlock()

	m.log.Info().Str("user_id", updated.ID).Str("role", string(role)).Msg("role updated")
	m.emit(snapshot)
}

// UpdateUserProfile merges the partial update into both copies. An email
// belonging to a different record (compared case-insensitively) rejects the
// whole update with no mutation.
func (m *SessionManager) UpdateUserProfile(ctx context.Context, update ports.ProfileUpdate) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return false
	}

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("profile update: credential store unreadable")
		return false
	}

	if update.Email != nil && !strings.EqualFold(*update.Email, m.session.Email) {
		for i := range creds {
			if creds[i].ID != m.session.ID && strings.EqualFold(creds[i].Email, *update.Email) {
				m.log.Debug().Str("email", *update.Email).Msg("profile update rejected: email taken")
				return false
			}
		}
	}

	idx := -1
	for i := range creds {
		if creds[i].ID == m.session.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	applyProfile(&creds[idx].User, update)
	updated := *m.session
	applyProfile(&updated, update)

	if err := m.saveCredentials(ctx, creds); err != nil {
		m.log.Error().Err(err).Msg("profile update: credential write failed")
		return false
	}
	if err := m.saveSession(ctx, &updated); err != nil {
		m.log.Error().Err(err).Msg("profile update: session write failed")
		return false
	}
	m.session = &updated
	return true
}

// CreateUser appends a new credential record. Duplicate emails are rejected;
// the fresh id is guaranteed unique against the existing collection.
func (m *SessionManager) CreateUser(ctx context.Context, input ports.CreateUserInput) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("create user: credential store unreadable")
		return false
	}

	for i := range creds {
		if strings.EqualFold(creds[i].Email, input.Email) {
			m.log.Debug().Str("email", input.Email).Msg("create user rejected: email taken")
			return false
		}
	}

	id := uuid.NewString()
	for hasID(creds, id) {
		id = uuid.NewString()
	}

	creds = append(creds, domain.Credential{
		User: domain.User{
			ID:         id,
			Name:       input.Name,
			Email:      input.Email,
			Role:       input.Role,
			Department: input.Department,
			AgentID:    input.AgentID,
			Avatar:     input.Avatar,
		},
		Secret: input.Secret,
	})

	if err := m.saveCredentials(ctx, creds); err != nil {
		m.log.Error().Err(err).Msg("create user: credential write failed")
		return false
	}
	m.log.Info().Str("user_id", id).Str("role", string(input.Role)).Msg("user created")
	return true
}

// Users returns the collection in storage order, secrets stripped.
func (m *SessionManager) Users(ctx context.Context) []domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.log.Error().Err(err).Msg("list users: credential store unreadable")
		return nil
	}
	out := make([]domain.User, 0, len(creds))
	for i := range creds {
		out = append(out, creds[i].Public())
	}
	return out
}

// DeleteUser removes the matching record. Deleting the session owner also
// logs out, in the same locked section, so no caller ever observes a session
// whose credential record is gone.
func (m *SessionManager) DeleteUser(ctx context.Context, id string) bool {
	m.mu.Lock()

	creds, err := m.loadCredentials(ctx)
	if err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("delete user: credential store unreadable")
		return false
	}

	idx := -1
	for i := range creds {
		if creds[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}

	creds = append(creds[:idx], creds[idx+1:]...)
	if err := m.saveCredentials(ctx, creds); err != nil {
		m.mu.Unlock()
		m.log.Error().Err(err).Msg("delete user: credential write failed")
		return false
	}

	loggedOut := false
	if m.session != nil && m.session.ID == id {
		m.session = nil
		if err := m.store.Remove(ctx, ports.KeySession); err != nil {
			m.log.Error().Err(err).Msg("delete user: session remove failed")
		}
		loggedOut = true
	}
	m.mu.Unlock()

	m.log.Info().Str("user_id", id).Bool("session_cleared", loggedOut).Msg("user deleted")
	if loggedOut {
		m.emit(nil)
	}
	return true
}

// emit invokes the session-change listener outside the manager lock.
func (m *SessionManager) emit(u *domain.User) {
	m.mu.Lock()
	fn := m.listener
	m.mu.Unlock()
	if fn != nil {
		fn(u)
	}
}

func (m *SessionManager) loadCredentials(ctx context.Context) ([]domain.Credential, error) {
	raw, ok, err := m.store.Read(ctx, ports.KeyUsers)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var creds []domain.Credential
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (m *SessionManager) saveCredentials(ctx context.Context, creds []domain.Credential) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return m.store.Write(ctx, ports.KeyUsers, string(raw))
}

func (m *SessionManager) saveSession(ctx context.Context, u *domain.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return m.store.Write(ctx, ports.KeySession, string(raw))
}

func applyProfile(u *domain.User, update ports.ProfileUpdate) {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Department != nil {
		u.Department = *update.Department
	}
	if update.AgentID != nil {
		u.AgentID = *update.AgentID
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
}

func hasID(creds []domain.Credential, id string) bool {
	for i := range creds {
		if creds[i].ID == id {
			return true
		}
	}
	return false
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}
