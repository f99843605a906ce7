package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Renderer = NewUniversalRenderer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestUniversalRenderer_Gomponents(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, c.Render(http.StatusOK, "", g.P(cmp.Text("hello"))))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hello</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
}

func TestUniversalRenderer_Templ(t *testing.T) {
	c, rec := newContext()
	component := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<span>templ</span>")
		return err
	})

	require.NoError(t, c.Render(http.StatusUnprocessableEntity, "", component))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "<span>templ</span>", rec.Body.String())
}

func TestUniversalRenderer_Unsupported(t *testing.T) {
	c, _ := newContext()

	err := c.Render(http.StatusOK, "", "plain string")
	assert.ErrorContains(t, err, "unsupported component type: string")
}
