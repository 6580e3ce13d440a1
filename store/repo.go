package store

// Repo is the durable key/value storage a session is mirrored to.
// Deleting a key that does not exist is not an error.
type Repo interface {
	// Get returns the value stored under key, ok is false when there is none
	Get(key string) (value string, ok bool, err error)

	// Set creates or replaces the value stored under key
	Set(key, value string) error

	// Delete removes key
	Delete(key string) error
}
