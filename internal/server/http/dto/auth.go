package dto

// RegisterRequest describes sign-up payload.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginRequest describes email/password payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse returns the issued bearer token.
type TokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}
