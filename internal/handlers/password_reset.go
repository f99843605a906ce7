package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/audit"
	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/storage"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// ForgotPasswordGet renders the forgot-password page (GET /forgot-password).
func (h *AuthHandler) ForgotPasswordGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "Forgot Password", flow.Outcome{}, pages.ForgotPassword(auth.ForgotPasswordData{}))
}

// ForgotPasswordPost requests a reset code (POST /forgot-password).
func (h *AuthHandler) ForgotPasswordPost(c echo.Context) error {
	var req ForgotPasswordRequest
	msg, err := bindForm(c, &req)
	if err != nil {
		return err
	}
	if msg != "" {
		return renderPage(c, http.StatusUnprocessableEntity, "Forgot Password", flow.Outcome{},
			pages.ForgotPassword(auth.ForgotPasswordData{Identifier: req.Identifier, Error: msg}))
	}

	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewForgotPassword(d)
	screen.Identifier = req.Identifier

	ctx := c.Request().Context()
	out := screen.Submit(ctx)
	if out.Error == "" {
		if err := save(c, store); err != nil {
			return err
		}
		audit.Emit(ctx, h.publisher, audit.ResetRequested, origin(c, req.Identifier), audit.Attempt{})
	}
	return renderPage(c, statusFor(out), "Forgot Password", out, pages.ForgotPassword(auth.ForgotPasswordData{
		Identifier: screen.Identifier,
		Error:      screen.Error,
		Success:    screen.Success,
	}))
}

// ResetPasswordGet renders the new password page (GET /reset-password).
// Without a pending reset it sends the visitor back to /forgot-password.
func (h *AuthHandler) ResetPasswordGet(c echo.Context) error {
	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewResetPassword(d)
	if out := screen.Mount(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	return renderPage(c, http.StatusOK, "Reset Password", flow.Outcome{}, pages.ResetPassword(resetData(screen)))
}

// ResetPasswordPost sets the new password (POST /reset-password).
func (h *AuthHandler) ResetPasswordPost(c echo.Context) error {
	var req ResetPasswordRequest
	msg, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewResetPassword(d)
	if out := screen.Mount(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	screen.Change(flow.FieldNewPassword, req.NewPassword)
	screen.Change(flow.FieldConfirmPassword, req.ConfirmPassword)

	if msg != "" {
		screen.Error = msg
		return renderPage(c, http.StatusUnprocessableEntity, "Reset Password", flow.Outcome{}, pages.ResetPassword(resetData(screen)))
	}

	ctx := c.Request().Context()
	identifier := d.Store.Get(storage.KeyResetIdentifier)
	out := screen.Submit(ctx)
	if out.Error == "" {
		if err := save(c, store); err != nil {
			return err
		}
		audit.Emit(ctx, h.publisher, audit.ResetCompleted, origin(c, identifier), audit.Attempt{})
	}
	return renderPage(c, statusFor(out), "Reset Password", out, pages.ResetPassword(resetData(screen)))
}

// ResetPasswordCheck re-renders the password indicators (POST /reset-password/check).
func (h *AuthHandler) ResetPasswordCheck(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewResetPassword(d)
	screen.Change(flow.FieldNewPassword, req.NewPassword)
	screen.Change(flow.FieldConfirmPassword, req.ConfirmPassword)
	return c.Render(http.StatusOK, "", partials.PasswordChecksBlock(resetChecks(screen)))
}

func resetChecks(screen *flow.ResetPassword) partials.PasswordChecks {
	return partials.PasswordChecks{
		Strength:     screen.Strength,
		ShowStrength: screen.NewPassword != "",
		Mismatch:     screen.Mismatch(),
	}
}

func resetData(screen *flow.ResetPassword) auth.ResetPasswordData {
	return auth.ResetPasswordData{
		NewPassword:     screen.NewPassword,
		ConfirmPassword: screen.ConfirmPassword,
		Checks:          resetChecks(screen),
		Error:           screen.Error,
		Success:         screen.Success,
	}
}
