package model

import "time"

// Project is one home-construction project. Exactly one project is "current"
// in a client session at a time; that selection is client state, never stored.
type Project struct {
	ID            string    `firestore:"-" json:"id"`
	OwnerID       string    `firestore:"ownerId,omitempty" json:"ownerId"`
	Name          string    `firestore:"name,omitempty" json:"name"`
	Location      string    `firestore:"location,omitempty" json:"location,omitempty"`
	StartDate     time.Time `firestore:"startDate,omitempty" json:"startDate"`
	Budget        float64   `firestore:"budget,omitempty" json:"budget"`
	ActivePhaseID string    `firestore:"activePhaseId,omitempty" json:"activePhaseId"`
	CreatedAt     time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
