package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Fragment endpoints the pages call through htmx.
const (
	RegisterCheckPath      = "/register/check"
	ResetCheckPath         = "/reset-password/check"
	VerifyOTPResendPath    = "/verify-otp/resend"
	VerifyOTPCooldownPath  = "/verify-otp/cooldown"
	ForgotVerifyResendPath = "/forgot-password/verify/resend"
	ForgotCooldownPath     = "/forgot-password/verify/cooldown"
	LogoutPath             = "/logout"
)

// field renders a labelled input. Extra nodes are added to the input.
func field(id, label, inputType, value string, extra ...cmp.Node) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(id), cmp.Text(label)),
		g.Input(
			g.ID(id),
			g.Name(id),
			g.Type(inputType),
			g.Value(value),
			g.Required(),
			cmp.Group(extra),
		),
	)
}

func heading(text string) cmp.Node {
	return g.H1(g.Class("heading"), cmp.Text(text))
}

func submit(label string) cmp.Node {
	return g.Button(g.Type("submit"), g.Class("button"), cmp.Text(label))
}

func navLink(prompt, href, label string) cmp.Node {
	return g.P(
		g.Class("nav"),
		cmp.If(prompt != "", cmp.Text(prompt+" ")),
		g.A(g.Href(href), cmp.Text(label)),
	)
}
