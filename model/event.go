package model

import "time"

// CalendarEvent is an appointment on the construction calendar. Category is
// free-form; EventCategories is only a suggestion list.
type CalendarEvent struct {
	ID              string    `firestore:"-" json:"id"`
	ProjectID       string    `firestore:"projectId,omitempty" json:"projectId"`
	Title           string    `firestore:"title,omitempty" json:"title"`
	DateTime        time.Time `firestore:"dateTime,omitempty" json:"dateTime"`
	Category        string    `firestore:"category,omitempty" json:"category"`
	ReminderEnabled bool      `firestore:"reminderEnabled" json:"reminderEnabled"`
	CreatedAt       time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
