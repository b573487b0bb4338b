package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/l3hner/hauspilot/store"
)

func TestGetUserByID(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, st.Set(ctx, "users", "u1", map[string]interface{}{
		"email": "lena@example.com",
		"name":  "Lena",
	}))

	user, err := GetUserByID(ctx, st, "u1")
	require.NoError(t, err)
	require.Equal(t, "u1", user.UserID)
	require.Equal(t, "lena@example.com", user.Email)
	require.Equal(t, "Lena", user.Name)

	_, err = GetUserByID(ctx, st, "unbekannt")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestSearchUsersByEmailPrefix(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()
	for id, email := range map[string]string{
		"u1": "anna@example.com",
		"u2": "anton@example.com",
		"u3": "bernd@example.com",
	} {
		require.NoError(t, st.Set(ctx, "users", id, map[string]interface{}{"email": email}))
	}

	users, err := SearchUsersByEmailPrefix(ctx, st, "an")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = SearchUsersByEmailPrefix(ctx, st, "zz")
	require.NoError(t, err)
	require.Empty(t, users)
}
