// Package auth holds the view models of the authentication pages.
package auth

import (
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// LoginData is the view model for the login page.
type LoginData struct {
	Email string
	Error string
}

// RegisterData is the view model for the registration page. The password
// fields are echoed back so a failed submit keeps the input.
type RegisterData struct {
	Username        string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string
	Checks          partials.PasswordChecks
	Error           string
	Success         string
}

// OTPData is the view model shared by both code verification pages.
type OTPData struct {
	Heading string
	Action  string
	Code    string
	Error   string
	Success string
	Resend  partials.Resend
}

// ForgotPasswordData is the view model for the forgot-password page.
type ForgotPasswordData struct {
	Identifier string
	Error      string
	Success    string
}

// ResetPasswordData is the view model for the reset-password page.
type ResetPasswordData struct {
	NewPassword     string
	ConfirmPassword string
	Checks          partials.PasswordChecks
	Error           string
	Success         string
}
