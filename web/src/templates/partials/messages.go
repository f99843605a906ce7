package partials

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// ErrorText shows a screen error, or nothing.
func ErrorText(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.P(g.Class("msg msg-error"), g.Role("alert"), cmp.Text(msg))
}

// SuccessText shows a screen success message, or nothing.
func SuccessText(msg string) cmp.Node {
	if msg == "" {
		return nil
	}
	return g.P(g.Class("msg msg-success"), g.Role("status"), cmp.Text(msg))
}
