package syncer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/session"
	"github.com/l3hner/hauspilot/store"
)

// Hub owns one Syncer per signed-in identity for the HTTP surface. Syncers
// start lazily on first use and stop when the identity signs out.
type Hub struct {
	store store.Store
	log   *zap.Logger

	mu      sync.Mutex
	syncers map[string]*Syncer
}

func NewHub(st store.Store, log *zap.Logger) *Hub {
	return &Hub{
		store:   st,
		log:     log,
		syncers: make(map[string]*Syncer),
	}
}

// Acquire returns the identity's synchronizer, starting one if needed.
func (h *Hub) Acquire(uid string) *Syncer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if s, ok := h.syncers[uid]; ok {
		return s
	}
	s := New(h.store, uid, h.log)
	s.Start(context.Background())
	h.syncers[uid] = s
	return s
}

// Release stops and removes the identity's synchronizer.
func (h *Hub) Release(uid string) {
	h.mu.Lock()
	s, ok := h.syncers[uid]
	delete(h.syncers, uid)
	h.mu.Unlock()
	if ok {
		s.Close()
	}
}

// Watch consumes provider session transitions and tears down syncers on
// sign-out. Meant to run as a goroutine for the lifetime of the process.
func (h *Hub) Watch(changes <-chan session.Change) {
	for change := range changes {
		if !change.SignedIn && change.UID != "" {
			h.log.Info("stopping syncer on sign-out", zap.String("uid", change.UID))
			h.Release(change.UID)
		}
	}
}
