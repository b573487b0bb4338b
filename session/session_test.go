package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/store"
)

const (
	waitFor = 3 * time.Second
	tick    = 10 * time.Millisecond
)

func newManager(t *testing.T) (*Manager, *AccountProvider, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	provider := NewAccountProvider(st, zap.NewNop())
	mgr := NewManager(provider, st, zap.NewNop())
	return mgr, provider, st
}

func TestLoadingResolvesWithoutSession(t *testing.T) {
	mgr, _, _ := newManager(t)
	require.Eventually(t, func() bool { return !mgr.Loading() }, waitFor, tick)
	require.Empty(t, mgr.UID())
	require.Nil(t, mgr.Current())
}

func TestRegisterLoginLogout(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := context.Background()

	uid, err := mgr.Register(ctx, "lena@example.com", "geheim123", "Lena")
	require.NoError(t, err)
	require.NotEmpty(t, uid)
	require.True(t, mgr.IsNewUser())
	require.Eventually(t, func() bool { return mgr.UID() == uid }, waitFor, tick)

	require.NoError(t, mgr.Logout(ctx))
	require.Eventually(t, func() bool { return mgr.UID() == "" }, waitFor, tick)
	require.False(t, mgr.IsNewUser())
	require.Nil(t, mgr.Current())

	got, err := mgr.Login(ctx, "lena@example.com", "geheim123")
	require.NoError(t, err)
	require.Equal(t, uid, got)
	require.Eventually(t, func() bool {
		u := mgr.Current()
		return u != nil && u.Email == "lena@example.com" && u.Name == "Lena"
	}, waitFor, tick)
	require.False(t, mgr.IsNewUser())
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	mgr, _, _ := newManager(t)
	_, err := mgr.Register(context.Background(), "kurz@example.com", "abc", "")
	require.ErrorIs(t, err, ErrWeakPassword)

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := context.Background()

	_, err := mgr.Register(ctx, "doppelt@example.com", "geheim123", "")
	require.NoError(t, err)
	_, err = mgr.Register(ctx, "doppelt@example.com", "anderes123", "")
	require.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestLoginInvalidCredentials(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := context.Background()

	_, err := mgr.Register(ctx, "lena@example.com", "geheim123", "")
	require.NoError(t, err)

	_, err = mgr.Login(ctx, "lena@example.com", "falsch999")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = mgr.Login(ctx, "unbekannt@example.com", "geheim123")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOutOfOtherIdentityIgnored(t *testing.T) {
	mgr, provider, _ := newManager(t)
	ctx := context.Background()

	uid, err := mgr.Register(ctx, "lena@example.com", "geheim123", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return mgr.UID() == uid }, waitFor, tick)

	require.NoError(t, provider.SignOut(ctx, "jemand-anderes"))
	// The listener sees the transition but the local session stays intact.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, uid, mgr.UID())
}

func TestOnChangeHandlers(t *testing.T) {
	mgr, _, _ := newManager(t)
	ctx := context.Background()

	var signIns atomic.Int32
	mgr.OnChange(func(c Change) {
		if c.SignedIn {
			signIns.Add(1)
		}
	})

	_, err := mgr.Register(ctx, "lena@example.com", "geheim123", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return signIns.Load() == 1 }, waitFor, tick)
}

func TestUnconfiguredManager(t *testing.T) {
	mgr := NewManager(nil, store.NewMemory(), zap.NewNop())
	ctx := context.Background()

	require.False(t, mgr.Configured())
	require.False(t, mgr.Loading())

	_, err := mgr.Register(ctx, "a@example.com", "geheim123", "")
	require.ErrorIs(t, err, ErrNotConfigured)
	_, err = mgr.Login(ctx, "a@example.com", "geheim123")
	require.ErrorIs(t, err, ErrNotConfigured)
	require.ErrorIs(t, mgr.Logout(ctx), ErrNotConfigured)
}
