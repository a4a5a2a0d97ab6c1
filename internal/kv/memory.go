package kv

import (
	"github.com/patrickmn/go-cache"
)

// Memory is a process-local store for tests and ephemeral sessions.
type Memory struct {
	cache *cache.Cache
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{cache: cache.New(cache.NoExpiration, 0)}
}

func (m *Memory) Get(key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrInvalidKey
	}
	x, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	return append([]byte(nil), x.([]byte)...), true, nil
}

func (m *Memory) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.cache.Set(key, append([]byte(nil), value...), cache.NoExpiration)
	return nil
}

func (m *Memory) Remove(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.cache.Delete(key)
	return nil
}

// Keys lists every stored key.
func (m *Memory) Keys() []string {
	items := m.cache.Items()
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	return keys
}
