package dto

import "time"

type CreateDiaryEntryRequest struct {
	Date     time.Time `json:"date" binding:"required"`
	Text     string    `json:"text" binding:"required"`
	PhotoURL string    `json:"photoUrl"`
}

type UpdateDiaryEntryRequest struct {
	Date     *time.Time `json:"date"`
	Text     *string    `json:"text"`
	PhotoURL *string    `json:"photoUrl"`
}
