package dto

type PasswordRecoveryRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// TokenCheckResponse confirms a reset token before the new password form is shown.
type TokenCheckResponse struct {
	Success bool `json:"success"`
	Valid   bool `json:"valid"`
}
