package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KV, used for --backend memory and tests.
type MemoryKV struct {
	mu      sync.Mutex
	vals    map[string]string
	failSet error
}

func NewMemory() *MemoryKV {
	return &MemoryKV{vals: map[string]string{}}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.vals[key] = value
	return nil
}

// FailWrites makes every later Set return err (nil restores normal behaviour).
func (m *MemoryKV) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSet = err
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.vals, key)
	return nil
}

func (m *MemoryKV) Close() error { return nil }
