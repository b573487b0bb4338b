package dto

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	// CaptchaToken is only required when reCAPTCHA is configured.
	CaptchaToken string `json:"captchaToken"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CaptchaRequest struct {
	Token  string `json:"token" binding:"required"`
	Action string `json:"action" binding:"required"`
}

type AssessmentResult struct {
	Score   float32
	Action  string
	Reasons []string
}
