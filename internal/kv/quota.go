package kv

import "fmt"

type quota struct {
	Store
	limit int
}

// WithQuota rejects writes larger than limit bytes with ErrQuotaExceeded,
// leaving the previous value in place.
func WithQuota(s Store, limit int) Store {
	return &quota{Store: s, limit: limit}
}

func (q *quota) Set(key string, value []byte) error {
	if len(value) > q.limit {
		return fmt.Errorf("%w: %s is %d bytes, limit %d", ErrQuotaExceeded, key, len(value), q.limit)
	}
	return q.Store.Set(key, value)
}
