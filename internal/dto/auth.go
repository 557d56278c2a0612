package dto

import (
	"time"

	"github.com/SscSPs/finsync/internal/core/domain"
)

// LoginRequest is the body of POST /auth/login. Field rules are applied by the
// validation engine so that every failing field gets a localized message.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) ToDomain() domain.LoginForm {
	return domain.LoginForm{Email: r.Email, Password: r.Password}
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	DisplayName     string `json:"displayName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r SignupRequest) ToDomain() domain.SignupForm {
	return domain.SignupForm{
		DisplayName:     r.DisplayName,
		Email:           r.Email,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

func (r ResetPasswordRequest) ToDomain() domain.ResetPasswordForm {
	return domain.ResetPasswordForm{Email: r.Email}
}

// ConfirmPasswordResetRequest completes a reset with the token from the reset link.
type ConfirmPasswordResetRequest struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// GoogleIDTokenRequest carries an ID token obtained by a client-side Google sign-in.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleExchangeCodeRequest carries the authorization code returned to the redirect URL.
type GoogleExchangeCodeRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

// GoogleLoginURLResponse is the consent page to send the browser to.
type GoogleLoginURLResponse struct {
	URL string `json:"url"`
}

// AuthResponse is returned by every successful sign-in.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// ToAuthResponse converts an established session.
func ToAuthResponse(s *domain.AuthSession) AuthResponse {
	return AuthResponse{
		Token:     s.AccessToken,
		ExpiresAt: s.ExpiresAt,
		User: UserResponse{
			UID:         s.Principal.UID,
			Email:       s.Principal.Email,
			DisplayName: s.Principal.DisplayName,
			PhotoURL:    s.Principal.PhotoURL,
			Role:        s.Role,
		},
	}
}

// MessageResponse carries a localized informational message.
type MessageResponse struct {
	Message string `json:"message"`
}
