package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/config"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/server"
)

// stubAPI is a stand-in for the remote authentication API. It records every
// call so tests can assert that nothing was sent.
type stubAPI struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]map[string]any
}

func (s *stubAPI) record(r *http.Request) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.calls = append(s.calls, r.URL.Path)
	if s.bodies == nil {
		s.bodies = map[string]map[string]any{}
	}
	s.bodies[r.URL.Path] = body
	return body
}

func (s *stubAPI) called(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		if c == path {
			n++
		}
	}
	return n
}

func (s *stubAPI) body(path string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[path]
}

func (s *stubAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body := s.record(r)
	w.Header().Set("Content-Type", "application/json")

	reply := func(status int, v any) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	switch r.URL.Path {
	case "/api/login":
		if body["email"] == "a@b.com" && body["password"] == "secret" {
			reply(http.StatusOK, map[string]string{"token": "abc123"})
			return
		}
		reply(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	case "/api/verify-otp", "/api/verify-forgot-password-otp":
		if body["otp"] == "123456" {
			reply(http.StatusOK, map[string]string{"message": "verified"})
			return
		}
		reply(http.StatusBadRequest, map[string]string{"error": "Invalid OTP"})
	case "/api/register", "/api/resend-otp", "/api/resend-forgot-otp", "/api/reset-password":
		reply(http.StatusOK, map[string]string{"message": "ok"})
	default:
		reply(http.StatusNotFound, map[string]string{"error": "unknown route"})
	}
}

// recordingPublisher keeps every published event before handing it on to
// the bus.
type recordingPublisher struct {
	pubsub.Publisher
	mu   sync.Mutex
	msgs []pubsub.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	p.mu.Lock()
	p.msgs = append(p.msgs, msg)
	p.mu.Unlock()
	return p.Publisher.Publish(ctx, msg)
}

// last returns the most recent event on topic.
func (p *recordingPublisher) last(topic string) (pubsub.Message, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.msgs) - 1; i >= 0; i-- {
		if p.msgs[i].Topic == topic {
			return p.msgs[i], true
		}
	}
	return pubsub.Message{}, false
}

type testApp struct {
	api    *stubAPI
	events *recordingPublisher
	server *httptest.Server
	client *http.Client
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	api := &stubAPI{}
	apiServer := httptest.NewServer(api)
	t.Cleanup(apiServer.Close)

	cfg := &config.Config{
		Addr:               ":0",
		APIBaseURL:         apiServer.URL,
		SessionSecret:      "a-very-secret-key-for-testing-!",
		RedirectDelay:      1500 * time.Millisecond,
		RateLimitPerMinute: 1000,
		LogFormat:          "text",
		LogLevel:           "error",
	}

	reg := prometheus.NewRegistry()
	bus := pubsub.NewWatermillBridge(nil)
	t.Cleanup(func() { _ = bus.Close() })
	events := &recordingPublisher{Publisher: bus}

	s := server.New(server.Deps{
		Config:    cfg,
		API:       apiclient.New(cfg.APIBaseURL, apiclient.WithMetrics(apiclient.NewMetrics(reg))),
		Publisher: events,
		Gatherer:  reg,
	})
	ts := httptest.NewServer(s.E)
	t.Cleanup(ts.Close)

	return &testApp{api: api, events: events, server: ts, client: newBrowser(t)}
}

// newBrowser returns a client with a cookie jar that does not follow
// redirects, so tests can inspect them.
func newBrowser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type response struct {
	status   int
	location string
	body     string
}

func (a *testApp) do(t *testing.T, method, path string, form url.Values, htmx bool) response {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, a.server.URL+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	res, err := a.client.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return response{status: res.StatusCode, location: res.Header.Get("Location"), body: string(raw)}
}

func (a *testApp) get(t *testing.T, path string) response {
	return a.do(t, http.MethodGet, path, nil, false)
}

func (a *testApp) post(t *testing.T, path string, form url.Values) response {
	return a.do(t, http.MethodPost, path, form, false)
}

func TestLoginFlow_Integration(t *testing.T) {
	app := setupApp(t)

	t.Run("root sends visitors to login", func(t *testing.T) {
		res := app.get(t, "/")
		assert.Equal(t, http.StatusSeeOther, res.status)
		assert.Equal(t, "/login", res.location)
	})

	t.Run("dashboard requires a token", func(t *testing.T) {
		res := app.get(t, "/dashboard")
		assert.Equal(t, http.StatusSeeOther, res.status)
		assert.Equal(t, "/login", res.location)

		login := app.get(t, "/login")
		assert.Contains(t, login.body, "Please log in to continue.")
		assert.NotContains(t, app.get(t, "/login").body, "Please log in to continue.")
	})

	t.Run("failed login keeps the email and shows the server message", func(t *testing.T) {
		res := app.post(t, "/login", url.Values{"email": {"a@b.com"}, "password": {"wrong"}})

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Invalid credentials")
		assert.Contains(t, res.body, `value="a@b.com"`)
	})

	t.Run("invalid email is rejected before the API", func(t *testing.T) {
		before := app.api.called("/api/login")
		res := app.post(t, "/login", url.Values{"email": {"not-an-email"}, "password": {"secret"}})

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Please enter a valid email address.")
		assert.Equal(t, before, app.api.called("/api/login"))
	})

	t.Run("successful login stores the token and redirects", func(t *testing.T) {
		res := app.post(t, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret"}})

		assert.Equal(t, http.StatusSeeOther, res.status)
		assert.Equal(t, "/dashboard", res.location)
		assert.Equal(t, map[string]any{"email": "a@b.com", "password": "secret"}, app.api.body("/api/login"))

		dash := app.get(t, "/dashboard")
		assert.Equal(t, http.StatusOK, dash.status)
		assert.Contains(t, dash.body, "Welcome to Kayotsaha")
	})

	t.Run("login page forwards a signed-in visitor", func(t *testing.T) {
		res := app.get(t, "/login")
		assert.Equal(t, http.StatusSeeOther, res.status)
		assert.Equal(t, "/dashboard", res.location)
	})

	t.Run("logout forgets the token", func(t *testing.T) {
		res := app.post(t, "/logout", url.Values{})
		assert.Equal(t, http.StatusSeeOther, res.status)
		assert.Equal(t, "/login", res.location)

		login := app.get(t, "/login")
		assert.Equal(t, http.StatusOK, login.status)
		assert.Contains(t, login.body, "You have been logged out.")

		dash := app.get(t, "/dashboard")
		assert.Equal(t, http.StatusSeeOther, dash.status)
	})
}

func TestRegistrationFlow_Integration(t *testing.T) {
	app := setupApp(t)

	valid := func() url.Values {
		return url.Values{
			"username":        {"asha"},
			"email":           {"asha@example.com"},
			"mobile":          {"9876543210"},
			"password":        {"Abcdef1!"},
			"confirmPassword": {"Abcdef1!"},
		}
	}

	t.Run("mismatched passwords never reach the API", func(t *testing.T) {
		form := valid()
		form.Set("confirmPassword", "Abcdef1?")
		res := app.post(t, "/register", form)

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Passwords do not match")
		assert.Zero(t, app.api.called("/api/register"))
	})

	t.Run("mobile must be ten digits", func(t *testing.T) {
		form := valid()
		form.Set("mobile", "12345")
		res := app.post(t, "/register", form)

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Mobile number must be exactly 10 digits.")
		assert.Zero(t, app.api.called("/api/register"))
	})

	t.Run("live check reports strength and mismatch", func(t *testing.T) {
		res := app.do(t, http.MethodPost, "/register/check", url.Values{"password": {"abc"}, "confirmPassword": {""}}, true)

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, `id="password-checks"`)
		assert.Contains(t, res.body, "Password strength: Weak")
		assert.Contains(t, res.body, "Passwords do not match")
		assert.NotContains(t, res.body, "<html")
	})

	t.Run("success shows the message and a delayed redirect", func(t *testing.T) {
		res := app.post(t, "/register", valid())

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "Registration successful! Redirecting to OTP verification...")
		assert.Contains(t, res.body, `<meta http-equiv="refresh" content="1.5; url=/verify-otp">`)
		assert.Equal(t, map[string]any{
			"username": "asha",
			"email":    "asha@example.com",
			"mobile":   "9876543210",
			"password": "Abcdef1!",
		}, app.api.body("/api/register"))
	})
}

func TestOTPFlow_Integration(t *testing.T) {
	app := setupApp(t)

	t.Run("mount starts the resend countdown", func(t *testing.T) {
		res := app.get(t, "/verify-otp")

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "Resend OTP in 30s")
		assert.Contains(t, res.body, "disabled")
	})

	t.Run("wrong code keeps the input and stays", func(t *testing.T) {
		res := app.post(t, "/verify-otp", url.Values{"otp": {"000000"}})

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Invalid OTP")
		assert.Contains(t, res.body, `value="000000"`)
		assert.NotContains(t, res.body, "http-equiv")
	})

	t.Run("resend is refused while cooling down", func(t *testing.T) {
		res := app.do(t, http.MethodPost, "/verify-otp/resend", url.Values{}, true)

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "Please wait")
		assert.Zero(t, app.api.called("/api/resend-otp"))
	})

	t.Run("cooldown fragment polls while counting", func(t *testing.T) {
		res := app.get(t, "/verify-otp/cooldown")

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, `hx-trigger="every 1s"`)
		assert.NotContains(t, res.body, "<html")
	})

	t.Run("correct code redirects to login after the delay", func(t *testing.T) {
		res := app.post(t, "/verify-otp", url.Values{"otp": {"123456"}})

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "OTP verified successfully! Redirecting to login...")
		assert.Contains(t, res.body, `content="1.5; url=/login"`)
	})
}

func TestOTPAuditActor_Integration(t *testing.T) {
	app := setupApp(t)

	// A reset started earlier leaves its identifier in the browser storage.
	res := app.post(t, "/forgot-password", url.Values{"identifier": {"someone@example.com"}})
	require.Equal(t, http.StatusOK, res.status)

	t.Run("registration events are not attributed to the reset identifier", func(t *testing.T) {
		app.get(t, "/verify-otp")
		res := app.post(t, "/verify-otp", url.Values{"otp": {"123456"}})
		require.Equal(t, http.StatusOK, res.status)

		msg, ok := app.events.last("auth.otp.verified")
		require.True(t, ok)
		assert.Empty(t, msg.Actor)
		assert.NotEmpty(t, msg.RequestID)
	})

	t.Run("reset events carry the reset identifier", func(t *testing.T) {
		app.get(t, "/forgot-password/verify")
		res := app.post(t, "/forgot-password/verify", url.Values{"otp": {"123456"}})
		require.Equal(t, http.StatusOK, res.status)

		msg, ok := app.events.last("auth.reset.verified")
		require.True(t, ok)
		assert.Equal(t, "someone@example.com", msg.Actor)
	})
}

func TestPasswordResetFlow_Integration(t *testing.T) {
	app := setupApp(t)

	t.Run("reset and verify pages need a pending identifier", func(t *testing.T) {
		for _, path := range []string{"/reset-password", "/forgot-password/verify"} {
			res := app.get(t, path)
			assert.Equal(t, http.StatusSeeOther, res.status, path)
			assert.Equal(t, "/forgot-password", res.location, path)
		}
	})

	t.Run("requesting a code stores the identifier", func(t *testing.T) {
		res := app.post(t, "/forgot-password", url.Values{"identifier": {"a@b.com"}})

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "OTP sent! Redirecting to verification page...")
		assert.Contains(t, res.body, `content="1.5; url=/forgot-password/verify"`)
		assert.Equal(t, map[string]any{"identifier": "a@b.com"}, app.api.body("/api/resend-forgot-otp"))
	})

	t.Run("verification step accepts the code", func(t *testing.T) {
		page := app.get(t, "/forgot-password/verify")
		require.Equal(t, http.StatusOK, page.status)

		res := app.post(t, "/forgot-password/verify", url.Values{"otp": {"123456"}})
		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, `content="1.5; url=/reset-password"`)
	})

	t.Run("mismatch is rejected locally", func(t *testing.T) {
		res := app.post(t, "/reset-password", url.Values{"newPassword": {"Secret1!"}, "confirmPassword": {"Secret2!"}})

		assert.Equal(t, http.StatusUnprocessableEntity, res.status)
		assert.Contains(t, res.body, "Passwords do not match")
		assert.Zero(t, app.api.called("/api/reset-password"))
	})

	t.Run("reset succeeds and clears the identifier", func(t *testing.T) {
		res := app.post(t, "/reset-password", url.Values{"newPassword": {"Secret1!"}, "confirmPassword": {"Secret1!"}})

		assert.Equal(t, http.StatusOK, res.status)
		assert.Contains(t, res.body, "Password reset successful! Redirecting to login...")
		assert.Contains(t, res.body, `content="1.5; url=/login"`)
		assert.Equal(t, map[string]any{"newPassword": "Secret1!"}, app.api.body("/api/reset-password"))

		again := app.get(t, "/reset-password")
		assert.Equal(t, http.StatusSeeOther, again.status)
		assert.Equal(t, "/forgot-password", again.location)
	})
}

func TestOperationalRoutes_Integration(t *testing.T) {
	app := setupApp(t)

	health := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, health.status)
	assert.Equal(t, "OK", health.body)

	css := app.get(t, "/static/app.css")
	assert.Equal(t, http.StatusOK, css.status)

	app.post(t, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret"}})
	metrics := app.get(t, "/metrics")
	assert.Equal(t, http.StatusOK, metrics.status)
	assert.Contains(t, metrics.body, `kayotsaha_api_requests_total{operation="login",outcome="success"} 1`)
}
