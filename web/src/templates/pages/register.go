package pages

import (
	cmp "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	g "maragu.dev/gomponents/html"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

// liveCheck re-renders the password indicators as the user types.
func liveCheck(path string) cmp.Node {
	return cmp.Group{
		hx.Post(path),
		hx.Trigger("keyup changed delay:200ms, change"),
		hx.Target("#" + partials.PasswordChecksID),
		hx.Swap("outerHTML"),
		hx.Include("closest form"),
	}
}

// Register renders the account creation form.
func Register(data auth.RegisterData) cmp.Node {
	return cmp.Group{
		heading("Create your Kayotsaha Account"),
		partials.ErrorText(data.Error),
		partials.SuccessText(data.Success),
		g.Form(
			g.Method("post"),
			g.Action(flow.PathRegister),
			g.Class("form"),
			field(flow.FieldUsername, "Username", "text", data.Username),
			field(flow.FieldEmail, "Email", "email", data.Email),
			field(flow.FieldMobile, "Mobile Number", "tel", data.Mobile,
				g.Pattern("[0-9]{10}"),
				g.Placeholder("10-digit mobile number"),
			),
			field(flow.FieldPassword, "Password", "password", data.Password,
				g.AutoComplete("new-password"),
				liveCheck(RegisterCheckPath),
			),
			field(flow.FieldConfirmPassword, "Confirm Password", "password", data.ConfirmPassword,
				g.AutoComplete("new-password"),
				liveCheck(RegisterCheckPath),
			),
			partials.PasswordChecksBlock(data.Checks),
			submit("Register"),
		),
		navLink("Already have an account?", flow.PathLogin, "Login"),
	}
}
