package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// ForgotPassword renders the reset code request form.
func ForgotPassword(data auth.ForgotPasswordData) cmp.Node {
	return cmp.Group{
		heading("Forgot Password"),
		partials.ErrorText(data.Error),
		partials.SuccessText(data.Success),
		g.Form(
			g.Method("post"),
			g.Action(flow.PathForgotPassword),
			g.Class("form"),
			field("identifier", "Email or Mobile Number", "text", data.Identifier),
			submit("Send OTP"),
		),
		navLink("Remembered it?", flow.PathLogin, "Back to login"),
	}
}

// ResetPassword renders the new password form.
func ResetPassword(data auth.ResetPasswordData) cmp.Node {
	return cmp.Group{
		heading("Reset Your Password"),
		partials.ErrorText(data.Error),
		partials.SuccessText(data.Success),
		g.Form(
			g.Method("post"),
			g.Action(flow.PathResetPassword),
			g.Class("form"),
			field(flow.FieldNewPassword, "New Password", "password", data.NewPassword,
				g.AutoComplete("new-password"),
				liveCheck(ResetCheckPath),
			),
			field(flow.FieldConfirmPassword, "Confirm Password", "password", data.ConfirmPassword,
				g.AutoComplete("new-password"),
				liveCheck(ResetCheckPath),
			),
			partials.PasswordChecksBlock(data.Checks),
			submit("Reset Password"),
		),
	}
}
