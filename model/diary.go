package model

import "time"

// DiaryEntry is one construction-diary entry.
type DiaryEntry struct {
	ID        string    `firestore:"-" json:"id"`
	ProjectID string    `firestore:"projectId,omitempty" json:"projectId"`
	Date      time.Time `firestore:"date,omitempty" json:"date"`
	Text      string    `firestore:"text,omitempty" json:"text"`
	PhotoURL  string    `firestore:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
