package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryCRUD(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	id, err := m.Add(ctx, "tasks", map[string]interface{}{"title": "Bodenplatte gießen", "done": false})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := m.Get(ctx, "tasks", id)
	require.NoError(t, err)
	require.Equal(t, "Bodenplatte gießen", doc.Data["title"])

	require.NoError(t, m.Update(ctx, "tasks", id, map[string]interface{}{"done": true}))
	doc, err = m.Get(ctx, "tasks", id)
	require.NoError(t, err)
	require.Equal(t, true, doc.Data["done"])
	require.Equal(t, "Bodenplatte gießen", doc.Data["title"])

	require.NoError(t, m.Delete(ctx, "tasks", id))
	_, err = m.Get(ctx, "tasks", id)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateMissing(t *testing.T) {
	m := NewMemory()
	err := m.Update(context.Background(), "tasks", "nope", map[string]interface{}{"done": true})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryServerTimestamp(t *testing.T) {
	m := NewMemory()
	fixed := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	m.Now = func() time.Time { return fixed }

	id, err := m.Add(context.Background(), "events", map[string]interface{}{"createdAt": ServerTimestamp})
	require.NoError(t, err)

	doc, err := m.Get(context.Background(), "events", id)
	require.NoError(t, err)
	require.Equal(t, fixed, doc.Data["createdAt"])
}

func TestMemoryQueryFilterAndOrder(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	for i, amount := range []float64{300, 100, 200} {
		_, err := m.Add(ctx, "expenses", map[string]interface{}{
			"projectId": "p1",
			"amount":    amount,
			"date":      time.Date(2025, 1, i+1, 0, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}
	_, err := m.Add(ctx, "expenses", map[string]interface{}{"projectId": "p2", "amount": 999.0})
	require.NoError(t, err)

	docs, err := m.GetAll(ctx, Query{
		Collection: "expenses",
		Filters:    []Filter{{Path: "projectId", Op: "==", Value: "p1"}},
		OrderBy:    "date",
		Desc:       true,
	})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	require.Equal(t, 200.0, docs[0].Data["amount"])
	require.Equal(t, 100.0, docs[1].Data["amount"])
	require.Equal(t, 300.0, docs[2].Data["amount"])
}

func TestMemoryPrefixRange(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	for _, email := range []string{"anna@example.com", "anton@example.com", "bernd@example.com"} {
		_, err := m.Add(ctx, "users", map[string]interface{}{"email": email})
		require.NoError(t, err)
	}

	docs, err := m.GetAll(ctx, Query{
		Collection: "users",
		Filters: []Filter{
			{Path: "email", Op: ">=", Value: "an"},
			{Path: "email", Op: "<=", Value: "an\uf8ff"},
		},
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestMemorySubscribeDeliversSnapshots(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := m.Subscribe(ctx, Query{
		Collection: "tasks",
		Filters:    []Filter{{Path: "projectId", Op: "==", Value: "p1"}},
	})
	require.NoError(t, err)

	snap := <-ch
	require.Empty(t, snap.Docs)

	_, err = m.Add(context.Background(), "tasks", map[string]interface{}{"projectId": "p1", "title": "Rohbau"})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		select {
		case snap, ok := <-ch:
			return ok && len(snap.Docs) == 1
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.Eventually(t, func() bool {
		_, ok := <-ch
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}
