package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

// Dashboard is the landing page behind the login.
func Dashboard() cmp.Node {
	return cmp.Group{
		heading("Welcome to Kayotsaha"),
		g.P(g.Class("lead"), cmp.Text("You are signed in.")),
		g.Form(
			g.Method("post"),
			g.Action(LogoutPath),
			submit("Logout"),
		),
	}
}
