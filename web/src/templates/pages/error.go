package pages

import (
	"strconv"

	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Error is the page shown for unhandled errors.
func Error(status int, message string) cmp.Node {
	return cmp.Group{
		heading(strconv.Itoa(status)),
		g.P(g.Class("lead"), cmp.Text(message)),
		navLink("", "/", "Back to start"),
	}
}
