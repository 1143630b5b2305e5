package session

import (
	"context"
	"fmt"
	"sync"
)

// Op is one recorded MemoryStore call, e.g. "get isLoggedIn".
type Op string

// MemoryStore is an in-process Store that records every call.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
	ops  []Op
	// Fail, when set, is returned by Set and Remove.
	Fail error
}

func NewMemoryStore(seed map[string]string) *MemoryStore {
	data := make(map[string]string, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	return &MemoryStore{data: data}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op("get "+key))
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op(fmt.Sprintf("set %s=%s", key, value)))
	if m.Fail != nil {
		return m.Fail
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = append(m.ops, Op("remove "+key))
	if m.Fail != nil {
		return m.Fail
	}
	delete(m.data, key)
	return nil
}

// Ops returns the recorded calls and clears the log.
func (m *MemoryStore) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.ops
	m.ops = nil
	return out
}

// Snapshot copies the current contents.
func (m *MemoryStore) Snapshot() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
