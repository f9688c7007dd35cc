package driven

// PreferenceStore is a durable key-value blob store.
// It backs the persisted layout record; values are opaque bytes.
//
// Implementations return domain.ErrNotFound from Get when the key is absent
// and may return domain.ErrStorageUnavailable when the backend cannot be used.
// Callers treat every error as "absent" and fall back to defaults.
type PreferenceStore interface {
	// Get reads the value stored under key.
	Get(key string) ([]byte, error)

	// Put writes value under key, replacing any previous value.
	Put(key string, value []byte) error
}
