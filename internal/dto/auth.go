package dto

// RegisterRequest represents the request payload for account creation
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// RegisterResponse represents the created account
type RegisterResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// ForgotPasswordRequest represents the request payload for a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// MeResponse is the current session's identity
type MeResponse struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
