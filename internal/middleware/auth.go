package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/storage"
	"github.com/kayotsaha/authweb/internal/view"
)

const msgLoginRequired = "Please log in to continue."

// TokenContextKey is where RequireToken leaves the session token.
const TokenContextKey = "token"

// RequireToken protects routes behind the login. Only the presence of a
// session token is checked; validating it is the remote API's business.
func RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		store, err := storage.FromContext(c)
		if err != nil {
			return err
		}

		token := store.Get(storage.KeyToken)
		if token == "" {
			view.SetFlashError(c, msgLoginRequired)
			return c.Redirect(http.StatusSeeOther, flow.PathLogin)
		}

		c.Set(TokenContextKey, token)
		return next(c)
	}
}
