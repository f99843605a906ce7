package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	cmp "maragu.dev/gomponents"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/view"
	"github.com/kayotsaha/authweb/web/src/templates/layouts"
)

// isHTMX reports whether the request came from htmx rather than a plain
// form submit.
func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// redirect leaves the page immediately. htmx requests get an HX-Redirect so
// the whole page moves instead of a swapped fragment.
func redirect(c echo.Context, path string) error {
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", path)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, path)
}

// renderPage wraps content in the base layout together with pending flash
// messages. A delayed redirect in out becomes a meta refresh.
func renderPage(c echo.Context, status int, title string, out flow.Outcome, content cmp.Node) error {
	page := layouts.Page{
		Title: title,
		Flash: view.GetFlashData(c),
	}
	if out.Redirects() {
		page.Refresh = &layouts.Refresh{URL: out.Redirect, Delay: out.Delay}
	}
	return c.Render(status, "", layouts.Base(page, content))
}

// statusFor is 422 for a failed action and 200 otherwise.
func statusFor(out flow.Outcome) int {
	if out.Error != "" {
		return http.StatusUnprocessableEntity
	}
	return http.StatusOK
}

// origin attributes an audit event to actor within the current request.
func origin(c echo.Context, actor string) pubsub.Origin {
	return pubsub.Origin{
		Actor:     actor,
		RequestID: c.Response().Header().Get(echo.HeaderXRequestID),
	}
}
