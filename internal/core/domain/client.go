package domain

import "time"

// Client is a business record owned by an agent. Independent of the auth
// core except for attribution via AgentID; only ID is unique.
type Client struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NationalID string    `json:"nationalId"`
	Contact    string    `json:"contact"`
	Email      string    `json:"email"`
	Address    string    `json:"address"`
	AgentID    string    `json:"agentId"`
	CreatedAt  time.Time `json:"createdAt"`
}
