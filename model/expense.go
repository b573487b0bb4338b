package model

import "time"

// Expense types.
const (
	ExpenseTypeExpense = "expense"
	ExpenseTypeInvoice = "invoice"
	ExpenseTypeOffer   = "offer"
)

// Expense is a budget entry (paid expense, invoice, or offer).
type Expense struct {
	ID        string    `firestore:"-" json:"id"`
	ProjectID string    `firestore:"projectId,omitempty" json:"projectId"`
	Type      string    `firestore:"type,omitempty" json:"type"`
	Amount    float64   `firestore:"amount,omitempty" json:"amount"`
	Date      time.Time `firestore:"date,omitempty" json:"date"`
	Category  string    `firestore:"category,omitempty" json:"category"`
	Note      string    `firestore:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}
