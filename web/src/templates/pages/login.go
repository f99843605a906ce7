package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// Login renders the sign-in form.
func Login(data auth.LoginData) cmp.Node {
	return cmp.Group{
		heading("Login to Kayotsaha"),
		partials.ErrorText(data.Error),
		g.Form(
			g.Method("post"),
			g.Action(flow.PathLogin),
			g.Class("form"),
			field("email", "Email", "email", data.Email, g.AutoComplete("email")),
			field("password", "Password", "password", "", g.AutoComplete("current-password")),
			submit("Login"),
		),
		navLink("", flow.PathForgotPassword, "Forgot password?"),
		navLink("Don't have an account?", flow.PathRegister, "Register"),
	}
}
