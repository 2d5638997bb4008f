// ABOUTME: In-memory backend for tests and throwaway sessions.
// ABOUTME: Can be told to fail writes to simulate an exhausted quota.

package storage

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by a Memory backend whose writes are failing.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

type Memory struct {
	mu      sync.Mutex
	entries map[string][]byte
	failErr error
	writes  int
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	val, ok := m.entries[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *Memory) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	val := make([]byte, len(value))
	copy(val, value)
	m.entries[key] = val
	m.writes++
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// FailWrites makes every later Set return err. Pass nil to recover.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// Writes counts successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
