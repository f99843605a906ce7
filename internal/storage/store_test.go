package storage

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	assert.Equal(t, "", s.Get(KeyToken), "missing key reads as empty")

	s.Set(KeyToken, "abc123")
	assert.Equal(t, "abc123", s.Get(KeyToken))

	s.Set(KeyToken, "def456")
	assert.Equal(t, "def456", s.Get(KeyToken), "last write wins")

	s.Remove(KeyToken)
	assert.Equal(t, "", s.Get(KeyToken))
}

func TestSessionStore_RoundTripThroughCookie(t *testing.T) {
	e := echo.New()
	e.Use(session.Middleware(NewCookieStore(testSessionSecret, false)))

	e.GET("/set", func(c echo.Context) error {
		s, err := FromContext(c)
		if err != nil {
			return err
		}
		s.Set(KeyResetIdentifier, "a@b.com")
		if err := s.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/get", func(c echo.Context) error {
		s, err := FromContext(c)
		if err != nil {
			return err
		}
		return c.String(http.StatusOK, s.Get(KeyResetIdentifier))
	})
	e.GET("/untouched", func(c echo.Context) error {
		s, err := FromContext(c)
		if err != nil {
			return err
		}
		if err := s.Save(c.Request(), c.Response()); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/set", nil))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, "a@b.com", rec.Body.String())

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/untouched", nil))
	assert.Empty(t, rec.Result().Cookies(), "an unchanged store writes no cookie")
}
