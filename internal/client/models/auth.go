// Package models holds the request and response payloads exchanged with the
// authentication backend.
package models

// UserProfile is the snapshot returned by GET /profile. It is replaced as a
// whole on every refresh.
type UserProfile struct {
	UserID            string `json:"userId,omitempty"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IsAccountVerified bool   `json:"isAccountVerified"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

// ResetPasswordRequest is the body of POST /reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
	Email       string `json:"email"`
	OTP         string `json:"otp"`
}

// VerifyResetOTPRequest is the body of POST /verify-reset-otp.
type VerifyResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyEmailRequest is the body of POST /verify-otp.
type VerifyEmailRequest struct {
	OTP string `json:"otp"`
}
