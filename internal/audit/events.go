// Package audit records what happened on the authentication screens. Events
// are published on the in-process bus and written to the structured log by
// Subscriber. Payloads never carry passwords, codes or tokens.
package audit

import (
	"context"
	"log/slog"

	"github.com/kayotsaha/authweb/internal/pubsub"
)

// Attempt is the payload of most screen events.
type Attempt struct {
	// Reason is the message shown to the user when the attempt failed.
	Reason string `json:"reason,omitempty"`
}

// Registration is published once an account was created.
type Registration struct {
	Username string `json:"username"`
}

// Resend is published when a new verification code was sent.
type Resend struct {
	// Flow is "registration" or "reset".
	Flow string `json:"flow"`
}

// Resend flows.
const (
	FlowRegistration = "registration"
	FlowReset        = "reset"
)

var (
	LoginSucceeded = pubsub.NewEvent[Attempt]("auth.login.succeeded")
	LoginFailed    = pubsub.NewEvent[Attempt]("auth.login.failed")
	Registered     = pubsub.NewEvent[Registration]("auth.registered")
	OTPVerified    = pubsub.NewEvent[Attempt]("auth.otp.verified")
	OTPResent      = pubsub.NewEvent[Resend]("auth.otp.resent")
	ResetRequested = pubsub.NewEvent[Attempt]("auth.reset.requested")
	ResetVerified  = pubsub.NewEvent[Attempt]("auth.reset.verified")
	ResetCompleted = pubsub.NewEvent[Attempt]("auth.reset.completed")
	LoggedOut      = pubsub.NewEvent[Attempt]("auth.logout")
)

// Topics lists every audit topic.
func Topics() []string {
	return []string{
		LoginSucceeded.Name(),
		LoginFailed.Name(),
		Registered.Name(),
		OTPVerified.Name(),
		OTPResent.Name(),
		ResetRequested.Name(),
		ResetVerified.Name(),
		ResetCompleted.Name(),
		LoggedOut.Name(),
	}
}

// Emit publishes an audit event. A failure is logged and otherwise ignored;
// auditing never fails a request.
func Emit[T any](ctx context.Context, p pubsub.Publisher, event pubsub.Event[T], origin pubsub.Origin, payload T) {
	if p == nil {
		return
	}
	if err := pubsub.Publish(ctx, p, event, origin, payload); err != nil {
		slog.WarnContext(ctx, "audit event not published", "topic", event.Name(), "error", err)
	}
}
