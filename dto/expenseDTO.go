package dto

import "time"

type CreateExpenseRequest struct {
	Type     string    `json:"type" binding:"required,oneof=expense invoice offer"`
	Amount   float64   `json:"amount" binding:"required"`
	Date     time.Time `json:"date" binding:"required"`
	Category string    `json:"category"`
	Note     string    `json:"note"`
}

type UpdateExpenseRequest struct {
	Type     *string    `json:"type" binding:"omitempty,oneof=expense invoice offer"`
	Amount   *float64   `json:"amount"`
	Date     *time.Time `json:"date"`
	Category *string    `json:"category"`
	Note     *string    `json:"note"`
}
