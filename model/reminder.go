package model

import "time"

// ReminderRecord marks a calendar-event reminder as sent so the mailer does
// not send it twice. Keyed by event id.
type ReminderRecord struct {
	EventID string    `firestore:"eventid,omitempty"`
	SentAt  time.Time `firestore:"sentat,omitempty"`
}
