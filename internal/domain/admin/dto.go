package admin

import (
	"time"

	"consultancy/internal/backend"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

type SessionResponse struct {
	Token     string           `json:"token,omitempty"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      backend.Identity `json:"user"`
	Redirect  string           `json:"redirect"`
}
