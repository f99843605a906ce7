package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kayotsaha/authweb/internal/flow"
	"github.com/kayotsaha/authweb/internal/middleware"
	"github.com/kayotsaha/authweb/web/src/templates/pages"
)

// RegisterRoutes sets up all the application routes. Every route that calls
// the remote API sits behind the rate limiter.
func (s *Server) RegisterRoutes() {
	auth := s.authHandler
	rateLimiter := middleware.RateLimiter(s.cfg.GetRateLimitPerMinute())

	s.E.GET("/", s.homeHandler.HomeGet)

	s.E.GET(flow.PathLogin, auth.LoginGet)
	s.E.POST(flow.PathLogin, auth.LoginPost, rateLimiter)
	s.E.POST(pages.LogoutPath, auth.Logout)

	s.E.GET(flow.PathRegister, auth.RegisterGet)
	s.E.POST(flow.PathRegister, auth.RegisterPost, rateLimiter)
	s.E.POST(pages.RegisterCheckPath, auth.RegisterCheck)

	s.E.GET(flow.PathVerifyOTP, auth.VerifyOTPGet)
	s.E.POST(flow.PathVerifyOTP, auth.VerifyOTPPost, rateLimiter)
	s.E.POST(pages.VerifyOTPResendPath, auth.VerifyOTPResend, rateLimiter)
	s.E.GET(pages.VerifyOTPCooldownPath, auth.VerifyOTPCooldown)

	s.E.GET(flow.PathForgotPassword, auth.ForgotPasswordGet)
	s.E.POST(flow.PathForgotPassword, auth.ForgotPasswordPost, rateLimiter)
	s.E.GET(flow.PathForgotVerify, auth.ForgotVerifyGet)
	s.E.POST(flow.PathForgotVerify, auth.ForgotVerifyPost, rateLimiter)
	s.E.POST(pages.ForgotVerifyResendPath, auth.ForgotVerifyResend, rateLimiter)
	s.E.GET(pages.ForgotCooldownPath, auth.ForgotVerifyCooldown)

	s.E.GET(flow.PathResetPassword, auth.ResetPasswordGet)
	s.E.POST(flow.PathResetPassword, auth.ResetPasswordPost, rateLimiter)
	s.E.POST(pages.ResetCheckPath, auth.ResetPasswordCheck)

	s.E.GET(flow.PathDashboard, s.dashboardHandler.DashboardGet, middleware.RequireToken)

	s.E.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	gatherer := s.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s.E.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
