package storage

// Medium is a durable key-value store holding the raw slot blobs.
type Medium interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Slots
	Read(key string) ([]byte, bool, error)
	Write(key string, value []byte) error

	// Utils
	GetConfigPath() string
}
