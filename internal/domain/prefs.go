package domain

// Prefs is the per-user persistent key-value capability.
// Values are plain strings; callers own their encoding.
type Prefs interface {
	// Get returns the stored value for key, or def when the key is absent
	Get(key, def string) string

	// Put stores a single value
	Put(key, value string) error

	// PutAll stores every pair in one write so readers never observe a partial update
	PutAll(values map[string]string) error

	// Delete removes the given keys; missing keys are ignored
	Delete(keys ...string) error
}
