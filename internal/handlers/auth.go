package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kayotsaha/authweb/internal/audit"
	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/pubsub"
	"github.com/kayotsaha/authweb/internal/storage"
	"github.com/kayotsaha/authweb/internal/view"
	"github.com/kayotsaha/authweb/internal/view/dto/auth"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
	"github.com/kayotsaha/authweb/web/src/templates/partials"
)

const msgLoggedOut = "You have been logged out."

// AuthHandler serves the authentication screens. Each request rebuilds the
// screen from the browser storage, applies the action and renders the result.
type AuthHandler struct {
	api           flow.AuthAPI
	publisher     pubsub.Publisher
	redirectDelay time.Duration
	now           func() time.Time
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(api flow.AuthAPI, publisher pubsub.Publisher, redirectDelay time.Duration) *AuthHandler {
	return &AuthHandler{
		api:           loggedAPI{next: api},
		publisher:     publisher,
		redirectDelay: redirectDelay,
		now:           time.Now,
	}
}

// deps loads the browser storage for this request. Callers save it once the
// screen is done with it.
func (h *AuthHandler) deps(c echo.Context) (flow.Deps, *storage.SessionStore, error) {
	store, err := storage.FromContext(c)
	if err != nil {
		return flow.Deps{}, nil, err
	}
	return flow.Deps{
		API:           h.api,
		Store:         store,
		RedirectDelay: h.redirectDelay,
		Now:           h.now,
	}, store, nil
}

func save(c echo.Context, store *storage.SessionStore) error {
	return store.Save(c.Request(), c.Response())
}

// LoginGet renders the login page (GET /login).
func (h *AuthHandler) LoginGet(c echo.Context) error {
	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewLogin(d)
	if out := screen.Mount(); out.Redirects() {
		return redirect(c, out.Redirect)
	}
	return renderPage(c, http.StatusOK, "Login", flow.Outcome{}, pages.Login(auth.LoginData{}))
}

// LoginPost handles the login form (POST /login).
func (h *AuthHandler) LoginPost(c echo.Context) error {
	var req LoginRequest
	msg, err := bindForm(c, &req)
	if err != nil {
		return err
	}
	if msg != "" {
		return renderPage(c, http.StatusUnprocessableEntity, "Login", flow.Outcome{},
			pages.Login(auth.LoginData{Email: req.Email, Error: msg}))
	}

	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewLogin(d)
	screen.Email = req.Email
	screen.Password = req.Password

	ctx := c.Request().Context()
	out := screen.Submit(ctx)
	if out.Error != "" {
		audit.Emit(ctx, h.publisher, audit.LoginFailed, origin(c, req.Email), audit.Attempt{Reason: out.Error})
		return renderPage(c, http.StatusUnprocessableEntity, "Login", flow.Outcome{},
			pages.Login(auth.LoginData{Email: screen.Email, Error: screen.Error}))
	}

	if err := save(c, store); err != nil {
		return err
	}
	audit.Emit(ctx, h.publisher, audit.LoginSucceeded, origin(c, req.Email), audit.Attempt{})
	return redirect(c, out.Redirect)
}

// Logout forgets the session token (POST /logout).
func (h *AuthHandler) Logout(c echo.Context) error {
	d, store, err := h.deps(c)
	if err != nil {
		return err
	}
	out := flow.Logout(d)
	if err := save(c, store); err != nil {
		return err
	}

	audit.Emit(c.Request().Context(), h.publisher, audit.LoggedOut, origin(c, ""), audit.Attempt{})
	view.SetFlashSuccess(c, msgLoggedOut)
	return redirect(c, out.Redirect)
}

// RegisterGet renders the registration page (GET /register).
func (h *AuthHandler) RegisterGet(c echo.Context) error {
	return renderPage(c, http.StatusOK, "Register", flow.Outcome{}, pages.Register(registerData(nil)))
}

// RegisterPost handles the registration form (POST /register).
func (h *AuthHandler) RegisterPost(c echo.Context) error {
	var req RegisterRequest
	msg, err := bindForm(c, &req)
	if err != nil {
		return err
	}

	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewRegister(d)
	screen.Fill(req.form())

	if msg != "" {
		data := registerData(screen)
		data.Error = msg
		return renderPage(c, http.StatusUnprocessableEntity, "Register", flow.Outcome{}, pages.Register(data))
	}

	ctx := c.Request().Context()
	out := screen.Submit(ctx)
	if out.Error == "" {
		audit.Emit(ctx, h.publisher, audit.Registered, origin(c, req.Email), audit.Registration{Username: req.Username})
	}
	return renderPage(c, statusFor(out), "Register", out, pages.Register(registerData(screen)))
}

// RegisterCheck re-renders the password indicators (POST /register/check).
func (h *AuthHandler) RegisterCheck(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	d, _, err := h.deps(c)
	if err != nil {
		return err
	}
	screen := flow.NewRegister(d)
	screen.Fill(req.form())
	return c.Render(http.StatusOK, "", partials.PasswordChecksBlock(registerChecks(screen)))
}

func (r RegisterRequest) form() flow.RegistrationForm {
	return flow.RegistrationForm{
		Username:        r.Username,
		Email:           r.Email,
		Mobile:          r.Mobile,
		Password:        r.Password,
		ConfirmPassword: r.ConfirmPassword,
	}
}

func registerData(screen *flow.Register) auth.RegisterData {
	if screen == nil {
		return auth.RegisterData{}
	}
	return auth.RegisterData{
		Username:        screen.Form.Username,
		Email:           screen.Form.Email,
		Mobile:          screen.Form.Mobile,
		Password:        screen.Form.Password,
		ConfirmPassword: screen.Form.ConfirmPassword,
		Checks:          registerChecks(screen),
		Error:           screen.Error,
		Success:         screen.Success,
	}
}

func registerChecks(screen *flow.Register) partials.PasswordChecks {
	return partials.PasswordChecks{
		Strength:     screen.Strength,
		ShowStrength: screen.Form.Password != "",
		Mismatch:     !screen.PasswordMatch,
	}
}
