package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/audit"
	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/storage"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// otpScreen is what differs between the two code verification pages.
type otpScreen struct {
	title        string
	heading      string
	action       string
	resendPath   string
	cooldownPath string
	flow         string
	open         func(flow.Deps) *flow.OTP
	verified     pubsub.Event[audit.Attempt]
	actor        func(flow.Deps) string // who audit events are attributed to
}

// noActor is used where the screen does not know who it acts for.
func noActor(flow.Deps) string { return "" }

func resetActor(d flow.Deps) string { return d.Store.Get(storage.KeyResetIdentifier) }

var (
	registrationOTPScreen = otpScreen{
		title:        "Verify OTP",
		heading:      "Verify OTP",
		action:       flow.PathVerifyOTP,
		resendPath:   pages.VerifyOTPResendPath,
		cooldownPath: pages.VerifyOTPCooldownPath,
		flow:         audit.FlowRegistration,
		open:         flow.NewOTP,
		verified:     audit.OTPVerified,
		actor:        noActor,
	}
	resetOTPScreen = otpScreen{
		title:        "Verify Reset Code",
		heading:      "Verify Reset OTP",
		action:       flow.PathForgotVerify,
		resendPath:   pages.ForgotVerifyResendPath,
		cooldownPath: pages.ForgotCooldownPath,
		flow:         audit.FlowReset,
		open:         flow.NewForgotVerify,
		verified:     audit.ResetVerified,
		actor:        resetActor,
	}
)

func (s otpScreen) resend(screen *flow.OTP) partials.Resend {
	return partials.Resend{
		Action:      s.resendPath,
		CooldownURL: s.cooldownPath,
		Remaining:   screen.Cooldown.Remaining(),
		Error:       screen.ResendError,
		Success:     screen.ResendSuccess,
	}
}

func (s otpScreen) data(screen *flow.OTP) auth.OTPData {
	return auth.OTPData{
		Heading: s.heading,
		Action:  s.action,
		Code:    screen.Code,
		Error:   screen.Error,
		Success: screen.Success,
		Resend:  s.resend(screen),
	}
}

// VerifyOTPGet renders the registration code page and starts the resend
// countdown (GET /verify-otp).
func (h *AuthHandler) VerifyOTPGet(c echo.Context) error { return h.otpGet(c, registrationOTPScreen) }

// VerifyOTPPost verifies a registration code (POST /verify-otp).
func (h *AuthHandler) VerifyOTPPost(c echo.Context) error { return h.otpPost(c, registrationOTPScreen) }

// VerifyOTPResend sends a new registration code (POST /verify-otp/resend).
func (h *AuthHandler) VerifyOTPResend(c echo.Context) error {
	return h.otpResend(c, registrationOTPScreen)
}

// VerifyOTPCooldown renders the resend control for polling (GET /verify-otp/cooldown).
func (h *AuthHandler) VerifyOTPCooldown(c echo.Context) error {
	return h.otpCooldown(c, registrationOTPScreen)
}

// ForgotVerifyGet renders the reset code page (GET /forgot-password/verify).
func (h *AuthHandler) ForgotVerifyGet(c echo.Context) error { return h.otpGet(c, resetOTPScreen) }

// ForgotVerifyPost verifies a reset code (POST /forgot-password/verify).
func (h *AuthHandler) ForgotVerifyPost(c echo.Context) error { return h.otpPost(c, resetOTPScreen) }

// ForgotVerifyResend sends a new reset code (POST /forgot-password/verify/resend).
func (h *AuthHandler) ForgotVerifyResend(c echo.Context) error { return h.otpResend(c, resetOTPScreen) }

// ForgotVerifyCooldown renders the resend control for polling
// (GET /forgot-password/verify/cooldown).
func (h *AuthHandler) ForgotVerifyCooldown(c echo.Context) error {
	return h.otpCooldown(c, resetOTPScreen)
}

func (h *AuthHandler) otpGet(c echo.Context, s otpScreen) error {
	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := s.open(d)
	if out := screen.Mount(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	if err := save(c, store); err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, s.title, flow.Outcome{}, pages.VerifyOTP(s.data(screen)))
}

func (h *AuthHandler) otpPost(c echo.Context, s otpScreen) error {
	var req OTPRequest
	msg, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := s.open(d)
	if out := screen.Guard(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	screen.Code = req.OTP

	if msg != "" {
		screen.Error = msg
		return renderPage(c, http.StatusUnprocessableEntity, s.title, flow.Outcome{}, pages.VerifyOTP(s.data(screen)))
	}

	ctx := c.Request().Context()
	out := screen.Submit(ctx)
	if out.Error == "" {
		audit.Emit(ctx, h.publisher, s.verified, origin(c, s.actor(d)), audit.Attempt{})
	}
	return renderPage(c, statusFor(out), s.title, out, pages.VerifyOTP(s.data(screen)))
}

func (h *AuthHandler) otpResend(c echo.Context, s otpScreen) error {
	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := s.open(d)
	if out := screen.Guard(); out.Redirects() {
		return redirect(c, out.Redirect)
	}

	ctx := c.Request().Context()
	out := screen.Resend(ctx)
	if err := save(c, store); err != nil {
		return err
	}
	if out.Error == "" {
		audit.Emit(ctx, h.publisher, audit.OTPResent, origin(c, s.actor(d)), audit.Resend{Flow: s.flow})
	}

	// htmx only swaps successful responses, so the fragment is always a 200.
	if isHTMX(c) {
		return c.Render(http.StatusOK, "", partials.ResendControl(s.resend(screen)))
	}
	return renderPage(c, statusFor(out), s.title, flow.Outcome{}, pages.VerifyOTP(s.data(screen)))
}

func (h *AuthHandler) otpCooldown(c echo.Context, s otpScreen) error {
	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := s.open(d)
	if out := screen.Guard(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	return c.Render(http.StatusOK, "", partials.ResendControl(s.resend(screen)))
}
