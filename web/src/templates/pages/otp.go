package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// VerifyOTP renders a code entry form with its resend control. Both the
// registration and the password-reset verification use it.
func VerifyOTP(data auth.OTPData) cmp.Node {
	return cmp.Group{
		heading(data.Heading),
		partials.ErrorText(data.Error),
		partials.SuccessText(data.Success),
		g.Form(
			g.Method("post"),
			g.Action(data.Action),
			g.Class("form"),
			field("otp", "Enter OTP", "text", data.Code,
				g.Placeholder("Enter 6-digit OTP"),
				g.AutoComplete("one-time-code"),
				cmp.Attr("inputmode", "numeric"),
			),
			submit("Verify OTP"),
		),
		partials.ResendControl(data.Resend),
	}
}
