package dto

import "time"

type CreateProjectRequest struct {
	Name      string    `json:"name" binding:"required"`
	Location  string    `json:"location"`
	StartDate time.Time `json:"startDate" binding:"required"`
	Budget    float64   `json:"budget" binding:"required"`
}

type UpdateProjectRequest struct {
	Name          *string    `json:"name"`
	Location      *string    `json:"location"`
	StartDate     *time.Time `json:"startDate"`
	Budget        *float64   `json:"budget"`
	ActivePhaseID *string    `json:"activePhaseId"`
}

type SelectProjectRequest struct {
	ProjectID string `json:"projectId"` // empty clears the selection
}
