package profile

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"talent-horizon/internal/storage"
)

// Registry owns one profile Store per client, loaded on first use.
type Registry struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	log    *zap.Logger
	now    func() time.Time
	stores map[string]*Store
}

func NewRegistry(kv storage.KeyValue, log *zap.Logger, now func() time.Time) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		kv:     kv,
		log:    log,
		now:    now,
		stores: make(map[string]*Store),
	}
}

func (r *Registry) Store(ctx context.Context, clientID string) (*Store, error) {
	r.mu.Lock()
	s, ok := r.stores[clientID]
	r.mu.Unlock()
	if ok {
		return s, nil
	}

	// Load outside the lock; concurrent first loads keep the store that
	// lands first.
	loaded, err := New(ctx, storage.NewNamespaced(r.kv, clientID), Options{
		ClientID: clientID,
		Logger:   r.log.With(zap.String("client_id", clientID)),
		Now:      r.now,
	})
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[clientID]; ok {
		return s, nil
	}
	r.stores[clientID] = loaded
	return loaded, nil
}
