package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/store"
)

type sentMail struct {
	to, subject, body string
}

func seedEvent(t *testing.T, st *store.Memory, projectID, title string, dateTime time.Time, reminder bool) string {
	t.Helper()
	id, err := st.Add(context.Background(), "events", map[string]interface{}{
		"projectId":       projectID,
		"title":           title,
		"dateTime":        dateTime,
		"reminderEnabled": reminder,
	})
	require.NoError(t, err)
	return id
}

func TestSweepSendsDueRemindersOnce(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "users", "u1", map[string]interface{}{
		"email": "lena@example.com",
		"name":  "Lena",
	}))
	require.NoError(t, st.Set(ctx, "projects", "p1", map[string]interface{}{
		"ownerId": "u1",
		"name":    "Einfamilienhaus",
	}))

	due := seedEvent(t, st, "p1", "Richtfest", time.Now().Add(2*time.Hour), true)
	seedEvent(t, st, "p1", "Zu weit weg", time.Now().Add(48*time.Hour), true)
	seedEvent(t, st, "p1", "Ohne Erinnerung", time.Now().Add(2*time.Hour), false)

	mailer := NewReminderMailer(st, &config.Config{}, zap.NewNop())
	var sent []sentMail
	mailer.send = func(to, subject, body string) error {
		sent = append(sent, sentMail{to, subject, body})
		return nil
	}

	require.NoError(t, mailer.Sweep(ctx))
	require.Len(t, sent, 1)
	require.Equal(t, "lena@example.com", sent[0].to)
	require.Equal(t, "Erinnerung: Richtfest", sent[0].subject)
	require.Contains(t, sent[0].body, "Einfamilienhaus")
	require.Contains(t, sent[0].body, "Hallo Lena")

	marker, err := st.Get(ctx, "reminders", due)
	require.NoError(t, err)
	require.Equal(t, due, marker.Data["eventid"])

	// The sent marker suppresses the second delivery.
	require.NoError(t, mailer.Sweep(ctx))
	require.Len(t, sent, 1)
}

func TestSweepSkipsEventWithoutProject(t *testing.T) {
	st := store.NewMemory()
	ctx := context.Background()

	seedEvent(t, st, "missing", "Verwaist", time.Now().Add(time.Hour), true)

	mailer := NewReminderMailer(st, &config.Config{}, zap.NewNop())
	var sent int
	mailer.send = func(string, string, string) error {
		sent++
		return nil
	}

	// Lookup failures are logged per event, the sweep itself succeeds.
	require.NoError(t, mailer.Sweep(ctx))
	require.Zero(t, sent)
}
