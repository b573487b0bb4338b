package dto

import "time"

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required"`
	DateTime        time.Time `json:"dateTime" binding:"required"`
	Category        string    `json:"category"`
	ReminderEnabled bool      `json:"reminderEnabled"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title"`
	DateTime        *time.Time `json:"dateTime"`
	Category        *string    `json:"category"`
	ReminderEnabled *bool      `json:"reminderEnabled"`
}
