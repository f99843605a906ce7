// Package apiclient talks to the remote authentication API. Every call is a
// single JSON POST: no retries, no idempotency keys and no client-side
// timeout beyond the caller's context.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/samber/oops"
)

// Operation describes one remote endpoint.
type Operation struct {
	Name     string
	Path     string
	fallback string
}

// The remote operations, with the generic message used when the server gives none.
var (
	OpLogin                   = Operation{Name: "login", Path: "/api/login", fallback: "Login failed. Please try again."}
	OpRegister                = Operation{Name: "register", Path: "/api/register", fallback: "Registration failed. Try again."}
	OpVerifyOTP               = Operation{Name: "verify_otp", Path: "/api/verify-otp", fallback: "Invalid OTP. Try again."}
	OpResendOTP               = Operation{Name: "resend_otp", Path: "/api/resend-otp", fallback: "Failed to resend OTP."}
	OpVerifyForgotPasswordOTP = Operation{Name: "verify_forgot_password_otp", Path: "/api/verify-forgot-password-otp", fallback: "Invalid OTP. Try again."}
	OpResetForgotPassword     = Operation{Name: "reset_forgot_password", Path: "/api/reset-password", fallback: "Reset failed. Try again."}
	OpResendForgotPasswordOTP = Operation{Name: "resend_forgot_password_otp", Path: "/api/resend-forgot-otp", fallback: "Failed to send OTP."}
)

// Client calls the authentication API rooted at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	metrics    *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics records every call in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a Client for the API at baseURL (scheme and host, no trailing slash).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.post(ctx, OpLogin, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account that still has to be confirmed with an OTP.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*MessageResponse, error) {
	return c.postMessage(ctx, OpRegister, req)
}

// VerifyOTP confirms a registration code.
func (c *Client) VerifyOTP(ctx context.Context, req OTPRequest) (*MessageResponse, error) {
	return c.postMessage(ctx, OpVerifyOTP, req)
}

// ResendOTP asks for a new registration code. The request has no body.
func (c *Client) ResendOTP(ctx context.Context) (*MessageResponse, error) {
	return c.postMessage(ctx, OpResendOTP, nil)
}

// VerifyForgotPasswordOTP confirms a password-reset code.
func (c *Client) VerifyForgotPasswordOTP(ctx context.Context, req OTPRequest) (*MessageResponse, error) {
	return c.postMessage(ctx, OpVerifyForgotPasswordOTP, req)
}

// ResetForgotPassword sets the new password after a verified reset code.
func (c *Client) ResetForgotPassword(ctx context.Context, req ResetPasswordRequest) (*MessageResponse, error) {
	return c.postMessage(ctx, OpResetForgotPassword, req)
}

// ResendForgotPasswordOTP sends a password-reset code to the identifier.
func (c *Client) ResendForgotPasswordOTP(ctx context.Context, req IdentifierRequest) (*MessageResponse, error) {
	return c.postMessage(ctx, OpResendForgotPasswordOTP, req)
}

// postMessage is for operations whose success body is informational. A 2xx
// answer succeeds even when its body is not the expected JSON.
func (c *Client) postMessage(ctx context.Context, op Operation, payload any) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.post(ctx, op, payload, optional{&out}); err != nil {
		return nil, err
	}
	return &out, nil
}

// optional wraps a response target that is filled when possible.
type optional struct {
	target any
}

// post performs the single POST behind every operation. A nil payload sends
// no body. out may be nil when the response body is not needed, or optional
// when a malformed body is acceptable.
func (c *Client) post(ctx context.Context, op Operation, payload any, out any) error {
	start := time.Now()
	outcome := OutcomeSuccess
	defer func() { c.metrics.record(op.Name, outcome, time.Since(start)) }()

	errb := oops.In("apiclient").With("operation", op.Name, "path", op.Path)

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			outcome = OutcomeEncode
			return &Error{Op: op, Err: errb.Code("encode").Wrapf(err, "encoding %s request", op.Name)}
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+op.Path, body)
	if err != nil {
		outcome = OutcomeTransport
		return &Error{Op: op, Err: errb.Code("request").Wrapf(err, "building %s request", op.Name)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome = OutcomeTransport
		return &Error{Op: op, Err: errb.Code("transport").Wrapf(err, "calling %s", op.Path)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		outcome = OutcomeTransport
		return &Error{Op: op, Status: resp.StatusCode, Err: errb.Code("read_body").Wrapf(err, "reading %s response", op.Name)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = OutcomeRejected
		return &Error{
			Op:            op,
			Status:        resp.StatusCode,
			ServerMessage: serverMessage(raw),
			Err:           errb.Code("rejected").With("status", resp.StatusCode).Errorf("%s returned status %d", op.Path, resp.StatusCode),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if opt, ok := out.(optional); ok {
		_ = json.Unmarshal(raw, opt.target)
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		outcome = OutcomeDecode
		return &Error{Op: op, Status: resp.StatusCode, Err: errb.Code("decode").Wrapf(err, "decoding %s response", op.Name)}
	}
	return nil
}

// serverMessage extracts the human-readable message from a failure body.
// The API uses "error"; some routes answer with "message" instead.
func serverMessage(raw []byte) string {
	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

// IsTransport reports whether err means the API was never reached.
func IsTransport(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != 0 {
		return false
	}
	oopsErr, ok := oops.AsOops(apiErr.Err)
	return ok && oopsErr.Code() == "transport"
}
