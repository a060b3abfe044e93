// Package media handles image uploads for categories, products and banners.
package media

import "context"

// ObjectStorage persists uploaded objects under caller-chosen keys.
// The key doubles as the image's public id.
type ObjectStorage interface {
	// Put stores body under key and returns the public URL of the object
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)

	// Delete removes the object stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
