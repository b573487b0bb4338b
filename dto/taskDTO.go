package dto

import "time"

type CreateTaskRequest struct {
	PhaseID string     `json:"phaseId" binding:"required"`
	Title   string     `json:"title" binding:"required"`
	Done    bool       `json:"done"`
	DueDate *time.Time `json:"dueDate"`
}

type UpdateTaskRequest struct {
	PhaseID *string    `json:"phaseId"`
	Title   *string    `json:"title"`
	Done    *bool      `json:"done"`
	DueDate *time.Time `json:"dueDate"`
}
