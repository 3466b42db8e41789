package repositories

import "context"

// FileStorage stores uploaded objects and returns a URL to read them back
type FileStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}
