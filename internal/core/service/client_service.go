package service

import (
	"context"
	"encoding/json"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/igilife/insurance-portal/internal/core/domain"
	"github.com/igilife/insurance-portal/internal/core/ports"
)

// ClientService is CRUD over the client collection, persisted under its own
// store key with the same discipline as the auth core but an independent
// lifecycle. Only id is unique; AgentID is attribution, not a foreign key.
type ClientService struct {
	store ports.KVStore
	log   zerolog.Logger

	mu      sync.Mutex
	entropy *rand.Rand
}

func NewClientService(store ports.KVStore, log zerolog.Logger) *ClientService {
	return &ClientService{
		store:   store,
		log:     log,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Add appends a new client record with a fresh ULID (sortable by creation
// time, matching CreatedAt ordering).
func (s *ClientService) Add(ctx context.Context, input ports.CreateClientInput) (domain.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("add client: store unreadable")
		return domain.Client{}, false
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:         ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		Name:       input.Name,
		NationalID: input.NationalID,
		Contact:    input.Contact,
		Email:      input.Email,
		Address:    input.Address,
		AgentID:    input.AgentID,
		CreatedAt:  now,
	}

	clients = append(clients, client)
	if err := s.save(ctx, clients); err != nil {
		s.log.Error().Err(err).Msg("add client: store write failed")
		return domain.Client{}, false
	}
	s.log.Info().Str("client_id", client.ID).Str("agent_id", client.AgentID).Msg("client added")
	return client, true
}

// Update merges the partial update into the matching record.
func (s *ClientService) Update(ctx context.Context, id string, update ports.ClientUpdate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("update client: store unreadable")
		return false
	}

	idx := -1
	for i := range clients {
		if clients[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	c := &clients[idx]
	if update.Name != nil {
		c.Name = *update.Name
	}
	if update.NationalID != nil {
		c.NationalID = *update.NationalID
	}
	if update.Contact != nil {
		c.Contact = *update.Contact
	}
	if update.Email != nil {
		c.Email = *update.Email
	}
	if update.Address != nil {
		c.Address = *update.Address
	}
	if update.AgentID != nil {
		c.AgentID = *update.AgentID
	}

	if err := s.save(ctx, clients); err != nil {
		s.log.Error().Err(err).Msg("update client: store write failed")
		return false
	}
	return true
}

func (s *ClientService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("delete client: store unreadable")
		return false
	}

	idx := -1
	for i := range clients {
		if clients[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}

	clients = append(clients[:idx], clients[idx+1:]...)
	if err := s.save(ctx, clients); err != nil {
		s.log.Error().Err(err).Msg("delete client: store write failed")
		return false
	}
	return true
}

// List returns the collection in storage order.
func (s *ClientService) List(ctx context.Context) []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients, err := s.load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list clients: store unreadable")
		return nil
	}
	return clients
}

// Search is a read-side filter over List: case-insensitive substring match
// on name, email, national id, and contact. An empty query returns everything.
func (s *ClientService) Search(ctx context.Context, query string) []domain.Client {
	clients := s.List(ctx)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clients
	}

	out := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.NationalID), q) ||
			strings.Contains(strings.ToLower(c.Contact), q) {
			out = append(out, c)
		}
	}
	return out
}

func (s *ClientService) load(ctx context.Context) ([]domain.Client, error) {
	raw, ok, err := s.store.Read(ctx, ports.KeyClients)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var clients []domain.Client
	if err := json.Unmarshal([]byte(raw), &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (s *ClientService) save(ctx context.Context, clients []domain.Client) error {
	raw, err := json.Marshal(clients)
	if err != nil {
		return err
	}
	return s.store.Write(ctx, ports.KeyClients, string(raw))
}
