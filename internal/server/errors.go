package server

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/middleware"
	"github.com/kayotsaha/authweb/web/src/templates/layouts"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
)

// setupErrorHandling installs the HTTP error handler. echo.HTTPErrors are
// expected and rendered as they are; anything else is logged with a stack
// trace and shown as a 500.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			middleware.FromContext(c.Request().Context()).Error("Internal Server Error (Unhandled)",
				"error", err.Error(),
				"path", c.Request().URL.Path,
				"stack_trace", string(debug.Stack()),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		page := layouts.Base(layouts.Page{Title: http.StatusText(code)}, pages.Error(code, message))
		if renderErr := c.Render(code, "", page); renderErr != nil {
			_ = c.String(code, message)
		}
	}
}
