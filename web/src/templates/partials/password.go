package partials

import (
	"strings"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/flow"
)

// PasswordChecksID is the element htmx swaps when a password field changes.
const PasswordChecksID = "password-checks"

// PasswordChecks holds the live indicators under the password fields.
type PasswordChecks struct {
	// Strength is shown only once a password has been typed.
	Strength     flow.Strength
	ShowStrength bool
	Mismatch     bool
}

// PasswordChecksBlock renders the strength and match indicators.
func PasswordChecksBlock(p PasswordChecks) cmp.Node {
	return g.Div(
		g.ID(PasswordChecksID),
		g.Aria("live", "polite"),
		cmp.If(p.ShowStrength,
			g.P(
				g.Class("hint strength-"+strings.ToLower(string(p.Strength))),
				cmp.Text("Password strength: "+string(p.Strength)),
			),
		),
		cmp.If(p.Mismatch,
			g.P(g.Class("hint hint-error"), cmp.Text(flow.MsgPasswordMismatch)),
		),
	)
}
