package domain

const unknownDescription = "Unknown"

// StorageBackend selects the durable key-value store for layout preferences.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps preferences for the life of the process only.
	StorageMemory StorageBackend = "memory"

	// StorageFile writes one JSON file per key.
	StorageFile StorageBackend = "file"

	// StorageSQLite writes to a key/value table in a SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageMemory, StorageFile, StorageSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageMemory:
		return "Memory (not persisted)"
	case StorageFile:
		return "File (one JSON record per key)"
	case StorageSQLite:
		return "SQLite (key/value table)"
	default:
		return unknownDescription
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageMemory, StorageFile, StorageSQLite}
}

// StorageSettings configures layout preference persistence.
type StorageSettings struct {
	// Backend is the key-value store implementation.
	Backend StorageBackend

	// Dir is the data directory. Empty means ~/.viewsync/data.
	Dir string

	// SaveDelayMS debounces preference writes. Zero writes synchronously.
	SaveDelayMS int
}

// LayoutSettings configures the divider bounds.
type LayoutSettings struct {
	MinRatio float64
	MaxRatio float64
}

// Bounds returns the configured bounds, or the defaults when they are invalid.
func (l LayoutSettings) Bounds() LayoutBounds {
	b := LayoutBounds{Min: l.MinRatio, Max: l.MaxRatio}
	if !b.IsValid() {
		return DefaultLayoutBounds()
	}
	return b
}

// GraphSettings locates the graph data file.
type GraphSettings struct {
	// Path is a YAML or JSON graph file. Empty disables the graph source.
	Path string

	// Watch reloads the graph when the file changes.
	Watch bool
}

// WebSettings configures the HTTP view server.
type WebSettings struct {
	Addr string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Layout  LayoutSettings
	Graph   GraphSettings
	Web     WebSettings
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend:     StorageFile,
			SaveDelayMS: 250,
		},
		Layout: LayoutSettings{
			MinRatio: DefaultMinRatio,
			MaxRatio: DefaultMaxRatio,
		},
		Graph: GraphSettings{
			Watch: true,
		},
		Web: WebSettings{
			Addr: "127.0.0.1:7878",
		},
	}
}
