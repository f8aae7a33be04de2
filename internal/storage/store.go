// Package storage provides the local key-value store used for persisted settings.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is a string key-value store. Values are opaque strings;
// callers JSON-encode structured records themselves.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// RedisURLEnv selects the Redis backend when set.
const RedisURLEnv = "DESKPET_REDIS_URL"

// Open returns the Redis store when DESKPET_REDIS_URL is set and the file
// store at filePath otherwise.
func Open(filePath string) (Store, error) {
	if url := strings.TrimSpace(os.Getenv(RedisURLEnv)); url != "" {
		s, err := OpenRedis(url)
		if err != nil {
			return nil, fmt.Errorf("failed to open redis storage: %w", err)
		}
		return s, nil
	}
	return NewFileStore(filePath), nil
}
