package storage

import "io"

// Storage persists photo payloads and menu images under opaque keys.
type Storage interface {
	Upload(key string, src io.Reader, size int64, contentType string) error
	Delete(key string) error
	// PublicURL derives the display URL for a stored key.
	PublicURL(key string) string
}
