package handlers

import (
	"context"
	"errors"

	"github.com/kayotsaha/authweb/internal/apiclient"
	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/logging"
	"github.com/kayotsaha/authweb/internal/middleware"
)

// loggedAPI logs failed API calls with the request-scoped logger. Transport
// failures are errors; rejections are expected and logged at info level.
type loggedAPI struct {
	next flow.AuthAPI
}

func logCall[T any](ctx context.Context, op string, resp T, err error) (T, error) {
	if err == nil {
		return resp, nil
	}
	logger := middleware.FromContext(ctx).With("operation", op)
	if apiclient.IsTransport(err) {
		logging.Error(logger, "auth api unreachable", err)
	} else {
		detail := err.Error()
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			detail = apiErr.Detail()
		}
		logger.Info("auth api rejected request", "error", err, "detail", detail)
	}
	return resp, err
}

func (a loggedAPI) Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error) {
	resp, err := a.next.Login(ctx, req)
	return logCall(ctx, apiclient.OpLogin.Name, resp, err)
}

func (a loggedAPI) Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.MessageResponse, error) {
	resp, err := a.next.Register(ctx, req)
	return logCall(ctx, apiclient.OpRegister.Name, resp, err)
}

func (a loggedAPI) VerifyOTP(ctx context.Context, req apiclient.OTPRequest) (*apiclient.MessageResponse, error) {
	resp, err := a.next.VerifyOTP(ctx, req)
	return logCall(ctx, apiclient.OpVerifyOTP.Name, resp, err)
}

func (a loggedAPI) ResendOTP(ctx context.Context) (*apiclient.MessageResponse, error) {
	resp, err := a.next.ResendOTP(ctx)
	return logCall(ctx, apiclient.OpResendOTP.Name, resp, err)
}

func (a loggedAPI) VerifyForgotPasswordOTP(ctx context.Context, req apiclient.OTPRequest) (*apiclient.MessageResponse, error) {
	resp, err := a.next.VerifyForgotPasswordOTP(ctx, req)
	return logCall(ctx, apiclient.OpVerifyForgotPasswordOTP.Name, resp, err)
}

func (a loggedAPI) ResetForgotPassword(ctx context.Context, req apiclient.ResetPasswordRequest) (*apiclient.MessageResponse, error) {
	resp, err := a.next.ResetForgotPassword(ctx, req)
	return logCall(ctx, apiclient.OpResetForgotPassword.Name, resp, err)
}

func (a loggedAPI) ResendForgotPasswordOTP(ctx context.Context, req apiclient.IdentifierRequest) (*apiclient.MessageResponse, error) {
	resp, err := a.next.ResendForgotPasswordOTP(ctx, req)
	return logCall(ctx, apiclient.OpResendForgotPasswordOTP.Name, resp, err)
}
