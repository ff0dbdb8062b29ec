package persist

import (
	"context"
	"errors"
	"fmt"
)

// Store is a durable key-value slot for serialized session state.
// Consumers define this interface, not the Redis or Mongo implementation.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("no value stored for key")

// Each store writes under its own key so cart and auth state never collide.

func CartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func AuthKey(sessionID string) string {
	return fmt.Sprintf("auth:%s", sessionID)
}
