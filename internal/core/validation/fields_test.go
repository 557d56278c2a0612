package validation_test

import (
	"testing"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/SscSPs/finsync/internal/core/validation"
	"github.com/stretchr/testify/assert"
)

func TestIsEmailShape(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"  jane.doe+budget@mail.example.vn ", true},
		{"jane@localhost", false},
		{"jane@example.", false},
		{"jane.example.com", false},
		{"@example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.IsEmailShape(tt.email))
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	assert.Equal(t, 0, validation.PasswordStrength(""))
	assert.Equal(t, 1, validation.PasswordStrength("password"))
	assert.Equal(t, 2, validation.PasswordStrength("Password"))
	assert.Equal(t, 3, validation.PasswordStrength("Passw0rd"))
	assert.Equal(t, 4, validation.PasswordStrength("Passw0rd!"))
}

func TestFieldValidators(t *testing.T) {
	v := newValidator(t, i18n.LocaleEN)

	assert.Empty(t, v.ValidateEmail("jane@example.com"))
	assert.Equal(t, "Email is required", v.ValidateEmail(""))
	assert.Equal(t, "Email address is invalid", v.ValidateEmail("jane@"))

	assert.Empty(t, v.ValidateLoginPassword("secret"))
	assert.Equal(t, "Password is required", v.ValidateLoginPassword(""))
	assert.Equal(t, "Password must be at least 6 characters", v.ValidateLoginPassword("12345"))

	assert.Empty(t, v.ValidateStrongPassword("Passw0rd"))
	assert.Equal(t, "Password must be at least 8 characters", v.ValidateStrongPassword("Pa0!"))
	assert.Contains(t, v.ValidateStrongPassword("password1"), "at least 3 of")

	assert.Empty(t, v.ValidateConfirmPassword("Passw0rd", "Passw0rd"))
	assert.Equal(t, "Confirm password is required", v.ValidateConfirmPassword("Passw0rd", ""))
	assert.Equal(t, "Passwords do not match", v.ValidateConfirmPassword("Passw0rd", "passw0rd"))

	assert.Empty(t, v.ValidateName("Emergency fund"))
	assert.Equal(t, "Name is required", v.ValidateName(" "))

	assert.Empty(t, v.ValidateDisplayName("Jane"))
	assert.Equal(t, "Display name must be at least 2 characters", v.ValidateDisplayName("J"))
}

func TestValidateSignup(t *testing.T) {
	v := newValidator(t, i18n.LocaleEN)

	ok := v.ValidateSignup(domain.SignupForm{DisplayName: "Jane", Email: "jane@example.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd"})
	assert.True(t, ok.IsValid)

	bad := v.ValidateSignup(domain.SignupForm{DisplayName: "", Email: "jane", Password: "password", ConfirmPassword: "other"})
	assert.False(t, bad.IsValid)
	assert.Len(t, bad.Errors, 4)
	assert.Equal(t, "Passwords do not match", bad.Errors["confirmPassword"])
}

func TestValidateLoginAndReset_Vietnamese(t *testing.T) {
	v := newValidator(t, i18n.LocaleVI)

	login := v.ValidateLogin(domain.LoginForm{Email: "", Password: ""})
	assert.Equal(t, "Email không được để trống", login.Errors["email"])
	assert.Equal(t, "Mật khẩu không được để trống", login.Errors["password"])

	reset := v.ValidateResetPassword(domain.ResetPasswordForm{Email: "jane@example"})
	assert.Equal(t, "Địa chỉ email không hợp lệ", reset.Errors["email"])
	assert.Equal(t, i18n.LocaleVI, v.Locale())
}
