package ports

import "context"

// Store keys. Each key holds one serialized JSON document; the namespaces are
// independent and writes are last-writer-wins per key.
const (
	KeyUsers   = "users"
	KeySession = "session"
	KeyClients = "clients"
)

// KVStore is the durable key-value contract every storage backend satisfies.
// Read reports ok=false when the key is absent, which is distinct from an
// empty value.
type KVStore interface {
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
