package services

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"time"

	"go.uber.org/zap"

	"github.com/l3hner/hauspilot/config"
	"github.com/l3hner/hauspilot/metrics"
	"github.com/l3hner/hauspilot/model"
	"github.com/l3hner/hauspilot/store"
)

const remindersCollection = "reminders"

// ReminderMailer periodically emails project owners about calendar events
// with the reminder flag set that start within the next 24 hours. A sent
// marker per event prevents duplicates.
type ReminderMailer struct {
	store store.Store
	cfg   *config.Config
	log   *zap.Logger

	// send is swapped out in tests.
	send func(to, subject, body string) error
}

func NewReminderMailer(st store.Store, cfg *config.Config, log *zap.Logger) *ReminderMailer {
	m := &ReminderMailer{store: st, cfg: cfg, log: log}
	m.send = m.sendSMTP
	return m
}

// Run sweeps on the configured interval until ctx is cancelled.
func (m *ReminderMailer) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.ReminderInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := m.Sweep(ctx); err != nil {
				m.log.Warn("reminder sweep failed", zap.Error(err))
			}
		}
	}
}

// Sweep sends reminders for all due events.
func (m *ReminderMailer) Sweep(ctx context.Context) error {
	now := time.Now()
	docs, err := m.store.GetAll(ctx, store.Query{
		Collection: "events",
		Filters: []store.Filter{
			{Path: "reminderEnabled", Op: "==", Value: true},
			{Path: "dateTime", Op: ">=", Value: now},
			{Path: "dateTime", Op: "<=", Value: now.Add(24 * time.Hour)},
		},
	})
	if err != nil {
		return err
	}

	for _, doc := range docs {
		if err := m.remind(ctx, doc); err != nil {
			m.log.Warn("reminder not sent",
				zap.String("event", doc.ID), zap.Error(err))
		}
	}
	return nil
}

func (m *ReminderMailer) remind(ctx context.Context, doc store.Document) error {
	if _, err := m.store.Get(ctx, remindersCollection, doc.ID); err == nil {
		return nil // already sent
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	projectID, _ := doc.Data["projectId"].(string)
	project, err := m.store.Get(ctx, "projects", projectID)
	if err != nil {
		return fmt.Errorf("lookup project %s: %w", projectID, err)
	}
	ownerID, _ := project.Data["ownerId"].(string)
	owner, err := GetUserByID(ctx, m.store, ownerID)
	if err != nil {
		return fmt.Errorf("lookup owner %s: %w", ownerID, err)
	}

	title, _ := doc.Data["title"].(string)
	dateTime, _ := doc.Data["dateTime"].(time.Time)
	projectName, _ := project.Data["name"].(string)

	subject := fmt.Sprintf("Erinnerung: %s", title)
	body := reminderEmailBody(owner, projectName, title, dateTime)
	if err := m.send(owner.Email, subject, body); err != nil {
		return err
	}

	metrics.RemindersSent.Inc()
	return m.store.Set(ctx, remindersCollection, doc.ID, map[string]interface{}{
		"eventid": doc.ID,
		"sentat":  store.ServerTimestamp,
	})
}

func reminderEmailBody(owner model.User, projectName, title string, dateTime time.Time) string {
	name := owner.Name
	if name == "" {
		name = owner.Email
	}
	return fmt.Sprintf(`<html><body>
<p>Hallo %s,</p>
<p>dein Termin <strong>%s</strong> im Projekt <strong>%s</strong> steht an:</p>
<p>%s Uhr</p>
<p>Dein Hauspilot</p>
</body></html>`, name, title, projectName, dateTime.Format("02.01.2006 15:04"))
}

func (m *ReminderMailer) sendSMTP(to, subject, body string) error {
	if !m.cfg.SMTPConfigured() {
		return fmt.Errorf("incomplete SMTP configuration: host=%q, port=%q, username=%q",
			m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.SMTPUsername)
	}

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	from := m.cfg.SMTPUsername
	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	message := "From: " + from + "\n" +
		"To: " + to + "\n" +
		"Subject: " + subject + "\n" +
		mime + "\n" +
		body

	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("SMTP send error: %w", err)
	}
	return nil
}
