package model

import "time"

// Task belongs to one project and one catalog phase.
type Task struct {
	ID        string     `firestore:"-" json:"id"`
	ProjectID string     `firestore:"projectId,omitempty" json:"projectId"`
	PhaseID   string     `firestore:"phaseId,omitempty" json:"phaseId"`
	Title     string     `firestore:"title,omitempty" json:"title"`
	Done      bool       `firestore:"done" json:"done"`
	DueDate   *time.Time `firestore:"dueDate,omitempty" json:"dueDate,omitempty"`
	CreatedAt time.Time  `firestore:"createdAt,omitempty" json:"createdAt"`
}
