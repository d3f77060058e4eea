package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache
	// Returns value, true if found
	// Returns nil, false if not found
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Replace overwrites an existing, unexpired value and resets its duration.
	// It fails if the key is missing, leaving the cache untouched.
	Replace(key string, value interface{}, duration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string)

	// OnEvicted registers a callback run when an item is deleted or expires.
	// Overwriting a key with Set does not trigger it.
	OnEvicted(fn func(key string, value interface{}))

	// ItemCount returns the number of unexpired items
	ItemCount() int

	// Flush removes all items
	Flush()
}
