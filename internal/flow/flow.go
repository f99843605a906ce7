// Package flow holds the authentication screens as plain state machines:
// the transient view state each screen keeps, the rules it applies locally
// and the contract it has with the remote API. It knows nothing about HTTP;
// the handlers feed it form input and render what it leaves behind.
//
// Every submit-driven screen follows the same path:
//
//	Idle -> Submitting -> Succeeded (redirect, usually delayed)
//	                   -> Failed    (error shown, input kept for a retry)
package flow

import (
	"context"
	"time"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/storage"
)

// Routes the screens redirect between.
const (
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathVerifyOTP      = "/verify-otp"
	PathForgotPassword = "/forgot-password"
	PathForgotVerify   = "/forgot-password/verify"
	PathResetPassword  = "/reset-password"
	PathDashboard      = "/dashboard"
)

// DefaultRedirectDelay keeps a success message visible before moving on.
const DefaultRedirectDelay = 1500 * time.Millisecond

// MsgPasswordMismatch is shown when the two password fields differ.
const MsgPasswordMismatch = "Passwords do not match"

// AuthAPI is the remote authentication API as the screens use it.
type AuthAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.MessageResponse, error)
	VerifyOTP(ctx context.Context, req apiclient.OTPRequest) (*apiclient.MessageResponse, error)
	ResendOTP(ctx context.Context) (*apiclient.MessageResponse, error)
	VerifyForgotPasswordOTP(ctx context.Context, req apiclient.OTPRequest) (*apiclient.MessageResponse, error)
	ResetForgotPassword(ctx context.Context, req apiclient.ResetPasswordRequest) (*apiclient.MessageResponse, error)
	ResendForgotPasswordOTP(ctx context.Context, req apiclient.IdentifierRequest) (*apiclient.MessageResponse, error)
}

// Deps are the collaborators shared by every screen.
type Deps struct {
	API           AuthAPI
	Store         storage.Store
	RedirectDelay time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) delay() time.Duration {
	if d.RedirectDelay > 0 {
		return d.RedirectDelay
	}
	return DefaultRedirectDelay
}

// Status is the position of a screen in the submit state machine.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Outcome is what a screen asks its host to do after an action.
// An empty Redirect means stay on the page.
type Outcome struct {
	Redirect string
	// Delay before following Redirect; zero means immediately.
	Delay   time.Duration
	Success string
	Error   string
}

// Redirects reports whether the outcome leaves the current page.
func (o Outcome) Redirects() bool { return o.Redirect != "" }

func stay() Outcome { return Outcome{} }

func redirectNow(path string) Outcome { return Outcome{Redirect: path} }

func failed(msg string) Outcome { return Outcome{Error: msg} }
