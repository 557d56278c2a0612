package validation

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/SscSPs/finsync/internal/core/domain"
	"github.com/SscSPs/finsync/internal/core/i18n"
	"github.com/go-playground/validator/v10"
)

const (
	MinLoginPasswordLen  = 6
	MinStrongPasswordLen = 8
	MinPasswordClasses   = 3
	MaxNameLen           = 100
	MinDisplayNameLen    = 2
	MaxDisplayNameLen    = 50
)

// Form field names, shared with the JSON of the identity forms.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldDisplayName     = "displayName"
	FieldName            = "name"
)

// validate is only used for the email shape; *validator.Validate is safe for concurrent use.
var validate = validator.New()

// IsEmailShape reports whether email looks like local@domain.tld.
func IsEmailShape(email string) bool {
	email = strings.TrimSpace(email)
	if validate.Var(email, "required,email") != nil {
		return false
	}
	at := strings.LastIndexByte(email, '@')
	domainPart := email[at+1:]
	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}

// PasswordStrength counts how many of {lowercase, uppercase, digit, special} pw contains.
// Strength meters render this score; the strong-password rule requires MinPasswordClasses.
func PasswordStrength(pw string) int {
	var lower, upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	score := 0
	for _, has := range []bool{lower, upper, digit, special} {
		if has {
			score++
		}
	}
	return score
}

func (c *collector) checkEmail(email string) {
	if strings.TrimSpace(email) == "" {
		c.add(FieldEmail, i18n.MsgRequired)
		return
	}
	if !IsEmailShape(email) {
		c.addPlain(FieldEmail, i18n.MsgInvalidEmail)
	}
}

func (c *collector) checkLoginPassword(pw string) {
	if pw == "" {
		c.add(FieldPassword, i18n.MsgRequired)
		return
	}
	if utf8.RuneCountInString(pw) < MinLoginPasswordLen {
		c.add(FieldPassword, i18n.MsgMinLength, strconv.Itoa(MinLoginPasswordLen))
	}
}

func (c *collector) checkStrongPassword(pw string) {
	if pw == "" {
		c.add(FieldPassword, i18n.MsgRequired)
		return
	}
	if utf8.RuneCountInString(pw) < MinStrongPasswordLen {
		c.add(FieldPassword, i18n.MsgMinLength, strconv.Itoa(MinStrongPasswordLen))
		return
	}
	if PasswordStrength(pw) < MinPasswordClasses {
		c.addPlain(FieldPassword, i18n.MsgPasswordWeak)
	}
}

func (c *collector) checkConfirmPassword(pw, confirm string) {
	if confirm == "" {
		c.add(FieldConfirmPassword, i18n.MsgRequired)
		return
	}
	if pw != confirm {
		c.addPlain(FieldConfirmPassword, i18n.MsgPasswordMismatch)
	}
}

func (c *collector) checkDisplayName(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		c.add(FieldDisplayName, i18n.MsgRequired)
		return
	}
	n := utf8.RuneCountInString(trimmed)
	if n < MinDisplayNameLen {
		c.add(FieldDisplayName, i18n.MsgMinLength, strconv.Itoa(MinDisplayNameLen))
	} else if n > MaxDisplayNameLen {
		c.add(FieldDisplayName, i18n.MsgMaxLength, strconv.Itoa(MaxDisplayNameLen))
	}
}

// ValidateEmail returns the localized problem with email, or "".
func (v *Validator) ValidateEmail(email string) string {
	c := v.collect()
	c.checkEmail(email)
	return c.first(FieldEmail)
}

// ValidateLoginPassword returns the localized problem with a sign-in password, or "".
func (v *Validator) ValidateLoginPassword(pw string) string {
	c := v.collect()
	c.checkLoginPassword(pw)
	return c.first(FieldPassword)
}

// ValidateStrongPassword returns the localized problem with a sign-up password, or "".
func (v *Validator) ValidateStrongPassword(pw string) string {
	c := v.collect()
	c.checkStrongPassword(pw)
	return c.first(FieldPassword)
}

// ValidateConfirmPassword returns the localized problem with the confirmation, or "".
func (v *Validator) ValidateConfirmPassword(pw, confirm string) string {
	c := v.collect()
	c.checkConfirmPassword(pw, confirm)
	return c.first(FieldConfirmPassword)
}

// ValidateName returns the localized problem with an entity name, or "".
func (v *Validator) ValidateName(name string) string {
	c := v.collect()
	c.checkText(FieldName, name, MaxNameLen)
	return c.first(FieldName)
}

// ValidateDisplayName returns the localized problem with a sign-up display name, or "".
func (v *Validator) ValidateDisplayName(name string) string {
	c := v.collect()
	c.checkDisplayName(name)
	return c.first(FieldDisplayName)
}

// ValidateLogin validates the sign-in form.
func (v *Validator) ValidateLogin(form domain.LoginForm) domain.ValidationResult {
	c := v.collect()
	c.checkEmail(form.Email)
	c.checkLoginPassword(form.Password)
	return c.result()
}

// ValidateSignup validates the registration form.
func (v *Validator) ValidateSignup(form domain.SignupForm) domain.ValidationResult {
	c := v.collect()
	c.checkDisplayName(form.DisplayName)
	c.checkEmail(form.Email)
	c.checkStrongPassword(form.Password)
	c.checkConfirmPassword(form.Password, form.ConfirmPassword)
	return c.result()
}

// ValidateResetPassword validates the password reset form.
func (v *Validator) ValidateResetPassword(form domain.ResetPasswordForm) domain.ValidationResult {
	c := v.collect()
	c.checkEmail(form.Email)
	return c.result()
}
