package flow

import (
	"context"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/storage"
)

const msgLoginFailed = "Login failed. Please try again."

// Login collects credentials and exchanges them for a session token.
type Login struct {
	deps Deps

	Email    string
	Password string
	Status   Status
	Error    string
}

// NewLogin returns an idle login screen.
func NewLogin(d Deps) *Login {
	return &Login{deps: d}
}

// Mount sends a visitor that already holds a token straight to the
// authenticated area. The token is not validated.
func (l *Login) Mount() Outcome {
	if l.deps.Store.Get(storage.KeyToken) != "" {
		return redirectNow(PathDashboard)
	}
	return stay()
}

// Submit calls the login endpoint and stores the returned token.
func (l *Login) Submit(ctx context.Context) Outcome {
	l.Error = ""
	l.Status = StatusSubmitting

	resp, err := l.deps.API.Login(ctx, apiclient.LoginRequest{Email: l.Email, Password: l.Password})
	if err != nil {
		return l.fail(apiclient.MessageOr(err, msgLoginFailed))
	}
	if resp.Token == "" {
		return l.fail(msgLoginFailed)
	}

	l.deps.Store.Set(storage.KeyToken, resp.Token)
	l.Status = StatusSucceeded
	return redirectNow(PathDashboard)
}

func (l *Login) fail(msg string) Outcome {
	l.Status = StatusFailed
	l.Error = msg
	return failed(msg)
}

// Logout forgets the session token.
func Logout(d Deps) Outcome {
	d.Store.Remove(storage.KeyToken)
	return redirectNow(PathLogin)
}
