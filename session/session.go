// Package session holds the authenticated identity and mediates
// register/login/logout against the identity provider.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

const usersCollection = "users"

// Manager owns the session state of one client: the provider-level identity,
// the matching profile document, and a loading flag that stays true until the
// first session observation resolves.
type Manager struct {
	provider Provider
	store    store.Store
	log      *zap.Logger

	mu        sync.Mutex
	uid       string
	user      *model.User
	loading   bool
	isNewUser bool
	onChange  []func(Change)
}

// NewManager wires the manager to the provider and starts the session
// listener. A nil provider means the backend is unconfigured: the manager is
// usable but every auth operation returns ErrNotConfigured.
func NewManager(provider Provider, st store.Store, log *zap.Logger) *Manager {
	m := &Manager{
		provider: provider,
		store:    st,
		log:      log,
		loading:  provider != nil,
	}
	if provider != nil {
		go m.listen(provider.Changes())
	}
	return m
}

// listen consumes provider session transitions, fetching or clearing the
// profile document on each one.
func (m *Manager) listen(changes <-chan Change) {
	for change := range changes {
		if change.SignedIn {
			var user *model.User
			doc, err := m.store.Get(context.Background(), usersCollection, change.UID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) {
					m.log.Warn("failed to fetch user profile",
						zap.String("uid", change.UID), zap.Error(err))
				}
			} else {
				user = decodeUser(change.UID, doc.Data)
			}
			m.mu.Lock()
			m.uid = change.UID
			m.user = user
			m.loading = false
			handlers := append(([]func(Change))(nil), m.onChange...)
			m.mu.Unlock()
			for _, h := range handlers {
				h(change)
			}
			continue
		}

		m.mu.Lock()
		// A sign-out for a different identity does not clear this session.
		if change.UID == "" || change.UID == m.uid {
			m.uid = ""
			m.user = nil
			m.isNewUser = false
		}
		m.loading = false
		handlers := append(([]func(Change))(nil), m.onChange...)
		m.mu.Unlock()
		for _, h := range handlers {
			h(change)
		}
	}
}

func decodeUser(uid string, data map[string]interface{}) *model.User {
	u := &model.User{UserID: uid}
	u.Email, _ = data["email"].(string)
	u.Name, _ = data["name"].(string)
	if t, ok := data["createdat"].(time.Time); ok {
		u.CreatedAt = t
	}
	return u
}

// Register creates a remote account, then writes the profile document keyed
// by the new identity, and flags the session for onboarding.
func (m *Manager) Register(ctx context.Context, email, password, name string) (string, error) {
	if m.provider == nil {
		return "", ErrNotConfigured
	}
	uid, err := m.provider.CreateAccount(ctx, email, password)
	if err != nil {
		return "", err
	}

	profile := map[string]interface{}{
		"email":     email,
		"createdat": store.ServerTimestamp,
	}
	if name != "" {
		profile["name"] = name
	}
	if err := m.store.Set(ctx, usersCollection, uid, profile); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.isNewUser = true
	m.mu.Unlock()
	return uid, nil
}

// Login authenticates against the provider. The session listener populates
// the local identity state once the provider reports the transition.
func (m *Manager) Login(ctx context.Context, email, password string) (string, error) {
	if m.provider == nil {
		return "", ErrNotConfigured
	}
	return m.provider.SignIn(ctx, email, password)
}

// Logout clears the remote session; the listener clears local state.
func (m *Manager) Logout(ctx context.Context) error {
	if m.provider == nil {
		return ErrNotConfigured
	}
	m.mu.Lock()
	uid := m.uid
	m.mu.Unlock()
	if uid == "" {
		return nil
	}
	return m.provider.SignOut(ctx, uid)
}

// OnChange registers a handler invoked after every session transition has
// been applied to local state.
func (m *Manager) OnChange(h func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, h)
}

// Current returns the profile of the signed-in identity, or nil.
func (m *Manager) Current() *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// UID returns the provider-level identity, or "".
func (m *Manager) UID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.uid
}

// Loading reports whether the first session observation is still pending.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// IsNewUser reports whether the session belongs to a freshly registered
// account, for onboarding routing.
func (m *Manager) IsNewUser() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isNewUser
}

// Configured reports whether an identity provider is wired in.
func (m *Manager) Configured() bool {
	return m.provider != nil
}
