package dto

type UserResponse struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type SearchEmailRequest struct {
	Email string `json:"email" binding:"required"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`
}
