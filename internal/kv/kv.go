// Package kv is the durable key-value store every tracker persists through.
// Values are JSON documents addressed by string keys.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrCorrupt marks a stored value that could not be decoded.
	ErrCorrupt = errors.New("corrupt stored value")
	// ErrQuotaExceeded is returned when a write exceeds the store's size limit.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
	// ErrInvalidKey is returned for empty keys or keys that cannot be stored.
	ErrInvalidKey = errors.New("invalid storage key")
)

// Store is a synchronous key-value store. Get reports false when the key is
// absent; absence is not an error.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Remove(key string) error
}

// GetJSON loads key and decodes it into T. A value that fails to decode is
// reported as ErrCorrupt together with found=true.
func GetJSON[T any](s Store, key string) (T, bool, error) {
	var v T
	data, ok, err := s.Get(key)
	if err != nil || !ok {
		return v, ok, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, true, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return v, true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return s.Set(key, data)
}
