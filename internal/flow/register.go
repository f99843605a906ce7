package flow

import (
	"context"

	"github.com/kayotsaha/authweb/internal/apiclient"
)

const (
	msgRegisterSucceeded = "Registration successful! Redirecting to OTP verification..."
	msgRegisterFailed    = "Registration failed. Try again."
)

// Registration form field names, as posted by the page.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldMobile          = "mobile"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// RegistrationForm is the raw input of the registration screen.
type RegistrationForm struct {
	Username        string
	Email           string
	Mobile          string
	Password        string
	ConfirmPassword string
}

// Register is the account creation screen. Strength and PasswordMatch are
// derived from the password fields on every change.
type Register struct {
	deps Deps

	Form          RegistrationForm
	Strength      Strength
	PasswordMatch bool
	Status        Status
	Error         string
	Success       string
}

// NewRegister returns an empty registration screen.
func NewRegister(d Deps) *Register {
	return &Register{deps: d, PasswordMatch: true}
}

// Change applies one field edit and recomputes the derived state.
func (r *Register) Change(field, value string) {
	switch field {
	case FieldUsername:
		r.Form.Username = value
	case FieldEmail:
		r.Form.Email = value
	case FieldMobile:
		r.Form.Mobile = value
	case FieldPassword:
		r.Form.Password = value
		r.Strength = RegistrationStrength(value)
		r.PasswordMatch = value == r.Form.ConfirmPassword
	case FieldConfirmPassword:
		r.Form.ConfirmPassword = value
		r.PasswordMatch = r.Form.Password == value
	}
}

// Fill applies every field of f in page order.
func (r *Register) Fill(f RegistrationForm) {
	r.Change(FieldUsername, f.Username)
	r.Change(FieldEmail, f.Email)
	r.Change(FieldMobile, f.Mobile)
	r.Change(FieldPassword, f.Password)
	r.Change(FieldConfirmPassword, f.ConfirmPassword)
}

// Submit registers the account. A password mismatch is rejected before any
// network call.
func (r *Register) Submit(ctx context.Context) Outcome {
	r.Error = ""
	r.Success = ""

	if !r.PasswordMatch {
		return r.fail(MsgPasswordMismatch)
	}

	r.Status = StatusSubmitting
	_, err := r.deps.API.Register(ctx, apiclient.RegisterRequest{
		Username: r.Form.Username,
		Email:    r.Form.Email,
		Mobile:   r.Form.Mobile,
		Password: r.Form.Password,
	})
	if err != nil {
		return r.fail(apiclient.MessageOr(err, msgRegisterFailed))
	}

	r.Status = StatusSucceeded
	r.Success = msgRegisterSucceeded
	return Outcome{Redirect: PathVerifyOTP, Delay: r.deps.delay(), Success: r.Success}
}

func (r *Register) fail(msg string) Outcome {
	r.Status = StatusFailed
	r.Error = msg
	return failed(msg)
}
