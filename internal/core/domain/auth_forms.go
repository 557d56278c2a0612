package domain

// LoginForm is the sign-in form as submitted.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupForm is the registration form as submitted.
type SignupForm struct {
	DisplayName     string `json:"displayName"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPasswordForm asks for a password reset link.
type ResetPasswordForm struct {
	Email string `json:"email"`
}
