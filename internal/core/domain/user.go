package domain

// User is the public identity record. It deliberately has no secret field:
// anything serialized outward (session key, API responses) uses this shape.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	Avatar     string `json:"avatar,omitempty"`
	Department string `json:"department,omitempty"`
	AgentID    string `json:"agentId,omitempty"`
}

// Credential is a User plus its secret. Credentials live only inside the
// session manager and the users store key; they never cross the service
// boundary.
type Credential struct {
	User
	Secret string `json:"password"`
}

// Public is the only sanctioned projection from a Credential to its public
// view. The embedded User carries no secret, so the projection cannot leak one.
func (c Credential) Public() User {
	return c.User
}
