package flow

import (
	"context"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/storage"
)

const (
	msgResetCodeSent   = "OTP sent! Redirecting to verification page..."
	msgResetCodeFailed = "Failed to send OTP."
	msgResetSucceeded  = "Password reset successful! Redirecting to login..."
	msgResetFailed     = "Reset failed. Try again."
)

// ForgotPassword asks for a reset code for an email or mobile number.
type ForgotPassword struct {
	deps Deps

	Identifier string
	Status     Status
	Error      string
	Success    string
}

// NewForgotPassword returns an empty forgot-password screen.
func NewForgotPassword(d Deps) *ForgotPassword {
	return &ForgotPassword{deps: d}
}

// Submit requests the code and remembers the identifier for the next steps.
func (f *ForgotPassword) Submit(ctx context.Context) Outcome {
	f.Error = ""
	f.Success = ""
	f.Status = StatusSubmitting

	_, err := f.deps.API.ResendForgotPasswordOTP(ctx, apiclient.IdentifierRequest{Identifier: f.Identifier})
	if err != nil {
		f.Status = StatusFailed
		f.Error = apiclient.MessageOr(err, msgResetCodeFailed)
		return failed(f.Error)
	}

	f.deps.Store.Set(storage.KeyResetIdentifier, f.Identifier)
	f.Status = StatusSucceeded
	f.Success = msgResetCodeSent
	return Outcome{Redirect: PathForgotVerify, Delay: f.deps.delay(), Success: f.Success}
}

// ResetPassword sets a new password for the pending identifier.
type ResetPassword struct {
	deps Deps

	NewPassword     string
	ConfirmPassword string
	Strength        Strength
	Status          Status
	Error           string
	Success         string
}

// FieldNewPassword is the reset form's new password field.
const FieldNewPassword = "newPassword"

// NewResetPassword returns an empty reset screen.
func NewResetPassword(d Deps) *ResetPassword {
	return &ResetPassword{deps: d}
}

// Mount sends the visitor back to the forgot-password screen unless a reset
// was requested first.
func (r *ResetPassword) Mount() Outcome {
	if r.deps.Store.Get(storage.KeyResetIdentifier) == "" {
		return redirectNow(PathForgotPassword)
	}
	return stay()
}

// Change applies one field edit and recomputes the strength indicator.
func (r *ResetPassword) Change(field, value string) {
	switch field {
	case FieldNewPassword:
		r.NewPassword = value
		r.Strength = ResetStrength(value)
	case FieldConfirmPassword:
		r.ConfirmPassword = value
	}
}

// Mismatch reports whether a confirmation has been typed and differs.
func (r *ResetPassword) Mismatch() bool {
	return r.ConfirmPassword != "" && r.ConfirmPassword != r.NewPassword
}

// Submit resets the password. Differing fields are rejected before any
// network call; success forgets the pending identifier.
func (r *ResetPassword) Submit(ctx context.Context) Outcome {
	r.Error = ""
	r.Success = ""

	if r.NewPassword != r.ConfirmPassword {
		r.Status = StatusFailed
		r.Error = MsgPasswordMismatch
		return failed(r.Error)
	}

	r.Status = StatusSubmitting
	_, err := r.deps.API.ResetForgotPassword(ctx, apiclient.ResetPasswordRequest{NewPassword: r.NewPassword})
	if err != nil {
		r.Status = StatusFailed
		r.Error = apiclient.MessageOr(err, msgResetFailed)
		return failed(r.Error)
	}

	r.deps.Store.Remove(storage.KeyResetIdentifier)
	r.deps.Store.Remove(storage.KeyForgotOTPResendAt)
	r.Status = StatusSucceeded
	r.Success = msgResetSucceeded
	return Outcome{Redirect: PathLogin, Delay: r.deps.delay(), Success: r.Success}
}
