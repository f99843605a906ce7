package layouts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cmp "maragu.dev/gomponents"

	"github.com/kayotsaha/authweb/internal/view"
)

func render(t *testing.T, n cmp.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func TestBase(t *testing.T) {
	t.Run("title and content", func(t *testing.T) {
		html := render(t, Base(Page{Title: "Login"}, cmp.Text("inner")))

		assert.Contains(t, html, "<title>Login - Kayotsaha</title>")
		assert.Contains(t, html, "inner")
		assert.NotContains(t, html, "http-equiv")
		assert.NotContains(t, html, `id="flash"`)
	})

	t.Run("delayed redirect", func(t *testing.T) {
		html := render(t, Base(Page{Refresh: &Refresh{URL: "/verify-otp", Delay: 1500 * time.Millisecond}}))

		assert.Contains(t, html, `<meta http-equiv="refresh" content="1.5; url=/verify-otp">`)
	})

	t.Run("flash messages are escaped", func(t *testing.T) {
		html := render(t, Base(Page{Flash: view.FlashData{
			Success: []string{"You have been logged out."},
			Error:   []string{"<b>bad</b>"},
		}}))

		assert.Contains(t, html, "You have been logged out.")
		assert.Contains(t, html, "&lt;b&gt;bad&lt;/b&gt;")
	})
}

func TestCalculateTitle(t *testing.T) {
	assert.Equal(t, "Kayotsaha", CalculateTitle(""))
	assert.Equal(t, "Register - Kayotsaha", CalculateTitle("Register"))
}
