package applications

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"talent-horizon/internal/storage"
)

// Registry owns one Store per client. Stores are loaded on first use and
// kept for the life of the process.
type Registry struct {
	mu     sync.Mutex
	kv     storage.KeyValue
	log    *zap.Logger
	notify Notifier
	now    func() time.Time
	stores map[string]*Store
}

func NewRegistry(kv storage.KeyValue, log *zap.Logger, notify Notifier, now func() time.Time) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		kv:     kv,
		log:    log,
		notify: notify,
		now:    now,
		stores: make(map[string]*Store),
	}
}

// Store returns the client's store, loading it from storage under the
// client's namespace the first time.
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
		Notifier: r.notify,
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
