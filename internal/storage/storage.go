// Package storage is the durable key-value layer behind the portal stores.
// Every value is an opaque JSON snapshot written wholesale on each change.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when the key holds no value.
var ErrNotFound = errors.New("storage: key not found")

type KeyValue interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Memory keeps values in process memory. It is the default for tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Save(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

// Namespaced prefixes every key with "<ns>:" so several clients can share
// one backend without seeing each other's values.
type Namespaced struct {
	kv KeyValue
	ns string
}

func NewNamespaced(kv KeyValue, ns string) *Namespaced {
	return &Namespaced{kv: kv, ns: ns}
}

func (n *Namespaced) key(k string) string {
	if n.ns == "" {
		return k
	}
	return n.ns + ":" + k
}

func (n *Namespaced) Load(ctx context.Context, key string) ([]byte, error) {
	return n.kv.Load(ctx, n.key(key))
}

func (n *Namespaced) Save(ctx context.Context, key string, value []byte) error {
	return n.kv.Save(ctx, n.key(key), value)
}
