package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayotsaha/authweb/internal/storage"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func TestRequireToken(t *testing.T) {
	e := echo.New()
	e.Use(session.Middleware(storage.NewCookieStore(testSessionSecret, false)))

	e.GET("/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome "+c.Get(TokenContextKey).(string))
	}, RequireToken)
	e.GET("/seed", func(c echo.Context) error {
		s, err := storage.FromContext(c)
		if err != nil {
			return err
		}
		s.Set(storage.KeyToken, "abc123")
		if err := s.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("missing token redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

		var flashCookie bool
		for _, c := range rec.Result().Cookies() {
			flashCookie = flashCookie || c.Name == "kayotsaha-flash"
		}
		assert.True(t, flashCookie, "login-required flash should be queued")
	})

	t.Run("any stored token is accepted", func(t *testing.T) {
		seedRec := httptest.NewRecorder()
		e.ServeHTTP(seedRec, httptest.NewRequest(http.MethodGet, "/seed", nil))
		cookies := seedRec.Result().Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Welcome abc123", rec.Body.String())
	})
}
