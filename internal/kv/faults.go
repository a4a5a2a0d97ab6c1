package kv

import "sync"

// Faulty wraps a store and fails a chosen number of upcoming reads, the
// way a disk or quota error would surface.
type Faulty struct {
	Store
	mu    sync.Mutex
	reads int
	err   error
}

func WithReadFaults(s Store) *Faulty {
	return &Faulty{Store: s}
}

// FailReads makes the next n calls to Get return err.
func (f *Faulty) FailReads(n int, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = n
	f.err = err
}

func (f *Faulty) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	if f.reads > 0 {
		f.reads--
		err := f.err
		f.mu.Unlock()
		return nil, false, err
	}
	f.mu.Unlock()
	return f.Store.Get(key)
}
