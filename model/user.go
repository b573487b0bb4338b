package model

import "time"

// User is the profile document stored at users/{id}. The password hash lives
// on the account record, not here.
type User struct {
	UserID    string    `firestore:"userid,omitempty" json:"userId"`
	Email     string    `firestore:"email,omitempty" json:"email"`
	Name      string    `firestore:"name,omitempty" json:"name,omitempty"`
	CreatedAt time.Time `firestore:"createdat,omitempty" json:"createdAt"`
}

// Account is the credential record backing email/password sign-in.
type Account struct {
	UserID    string    `firestore:"userid,omitempty"`
	Email     string    `firestore:"email,omitempty"`
	Password  string    `firestore:"password,omitempty"` // bcrypt hash
	Active    string    `firestore:"active,omitempty"`   // "0" inactive, "1" active
	CreatedAt time.Time `firestore:"createdat,omitempty"`
}
