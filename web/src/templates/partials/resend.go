package partials

import (
	"fmt"

	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"
)

// ResendID is the element replaced by resend and cooldown responses.
const ResendID = "resend"

// Resend describes the resend control of a verification screen.
type Resend struct {
	Action      string
	CooldownURL string
	Remaining   int
	Error       string
	Success     string
}

// ResendControl renders the resend button. While the cooldown runs it polls
// CooldownURL every second and replaces itself with the answer.
func ResendControl(r Resend) cmp.Node {
	cooling := r.Remaining > 0
	label := "Resend OTP"
	if cooling {
		label = fmt.Sprintf("Resend OTP in %ds", r.Remaining)
	}

	return g.Div(
		g.ID(ResendID),
		g.Class("resend"),
		cmp.If(cooling, cmp.Group{
			hx.Get(r.CooldownURL),
			hx.Trigger("every 1s"),
			hx.Swap("outerHTML"),
		}),
		SuccessText(r.Success),
		ErrorText(r.Error),
		g.Form(
			g.Method("post"),
			g.Action(r.Action),
			hx.Post(r.Action),
			hx.Target("#"+ResendID),
			hx.Swap("outerHTML"),
			g.Button(
				g.Type("submit"),
				g.Class("link-button"),
				cmp.If(cooling, g.Disabled()),
				cmp.Text(label),
			),
		),
	)
}
