package storage

// Provider is the durable key-value store the application state lives
// in. Values are JSON. Implementations are not safe for concurrent use.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Key-value access. Get reports whether the key was present.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error

	// Utils
	GetConfigPath() string
}
