package driven

// ConfigStore provides persistent key-value configuration.
// Keys use dot notation, e.g. "api.base_url" or "feed.last_id".
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" if absent.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 if absent.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false if absent.
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error
}
