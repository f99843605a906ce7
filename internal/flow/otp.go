package flow

import (
	"context"
	"fmt"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/storage"
)

const (
	msgOTPVerified       = "OTP verified successfully! Redirecting to login..."
	msgResetOTPVerified  = "OTP verified successfully! Redirecting to reset your password..."
	msgOTPInvalid        = "Invalid OTP. Try again."
	msgOTPResent         = "OTP resent successfully."
	msgOTPResendFailed   = "Failed to resend OTP."
	msgResendCoolingDown = "Please wait %ds before requesting another OTP."
)

// otpKind holds what differs between the registration and the reset
// verification screens.
type otpKind struct {
	countdownKey      string
	requireIdentifier bool
	redirect          string
	verified          string
	verify            func(ctx context.Context, d Deps, code string) error
	resend            func(ctx context.Context, d Deps) error
}

var registrationOTP = otpKind{
	countdownKey: storage.KeyOTPResendAt,
	redirect:     PathLogin,
	verified:     msgOTPVerified,
	verify: func(ctx context.Context, d Deps, code string) error {
		_, err := d.API.VerifyOTP(ctx, apiclient.OTPRequest{OTP: code})
		return err
	},
	resend: func(ctx context.Context, d Deps) error {
		_, err := d.API.ResendOTP(ctx)
		return err
	},
}

var resetOTP = otpKind{
	countdownKey:      storage.KeyForgotOTPResendAt,
	requireIdentifier: true,
	redirect:          PathResetPassword,
	verified:          msgResetOTPVerified,
	verify: func(ctx context.Context, d Deps, code string) error {
		_, err := d.API.VerifyForgotPasswordOTP(ctx, apiclient.OTPRequest{OTP: code})
		return err
	},
	resend: func(ctx context.Context, d Deps) error {
		_, err := d.API.ResendForgotPasswordOTP(ctx, apiclient.IdentifierRequest{
			Identifier: d.Store.Get(storage.KeyResetIdentifier),
		})
		return err
	},
}

// OTP is a code verification screen with a resend cooldown. Verification
// and resend report their results separately.
type OTP struct {
	deps Deps
	kind otpKind

	Code     string
	Cooldown *Countdown
	Status   Status
	Error    string
	Success  string

	ResendError   string
	ResendSuccess string
}

// NewOTP returns the registration verification screen.
func NewOTP(d Deps) *OTP { return newOTP(d, registrationOTP) }

// NewForgotVerify returns the password-reset verification screen. It needs
// the pending reset identifier, like the reset screen that follows it.
func NewForgotVerify(d Deps) *OTP { return newOTP(d, resetOTP) }

func newOTP(d Deps, kind otpKind) *OTP {
	return &OTP{deps: d, kind: kind, Cooldown: NewCountdown(d, kind.countdownKey)}
}

// Guard redirects away when a required pending identifier is missing.
func (o *OTP) Guard() Outcome {
	if o.kind.requireIdentifier && o.deps.Store.Get(storage.KeyResetIdentifier) == "" {
		return redirectNow(PathForgotPassword)
	}
	return stay()
}

// Mount starts the resend countdown at its full length.
func (o *OTP) Mount() Outcome {
	if out := o.Guard(); out.Redirects() {
		return out
	}
	o.Cooldown.Reset()
	return stay()
}

// Submit verifies the entered code. On failure the code stays in place.
func (o *OTP) Submit(ctx context.Context) Outcome {
	o.Error = ""
	o.Success = ""
	o.Status = StatusSubmitting

	if err := o.kind.verify(ctx, o.deps, o.Code); err != nil {
		o.Status = StatusFailed
		o.Error = apiclient.MessageOr(err, msgOTPInvalid)
		return failed(o.Error)
	}

	o.Status = StatusSucceeded
	o.Success = o.kind.verified
	return Outcome{Redirect: o.kind.redirect, Delay: o.deps.delay(), Success: o.Success}
}

// Resend asks for a new code. It is refused while the cooldown runs and
// restarts the cooldown once the API accepted the request.
func (o *OTP) Resend(ctx context.Context) Outcome {
	o.ResendError = ""
	o.ResendSuccess = ""

	if left := o.Cooldown.Remaining(); left > 0 {
		o.ResendError = fmt.Sprintf(msgResendCoolingDown, left)
		return failed(o.ResendError)
	}

	if err := o.kind.resend(ctx, o.deps); err != nil {
		o.ResendError = apiclient.MessageOr(err, msgOTPResendFailed)
		return failed(o.ResendError)
	}

	o.Cooldown.Reset()
	o.ResendSuccess = msgOTPResent
	return Outcome{Success: o.ResendSuccess}
}
