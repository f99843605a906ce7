package apiclient

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body returned by a successful login. Token is the only
// field the login screen relies on.
type LoginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// OTPRequest carries a one-time code for both verification endpoints.
type OTPRequest struct {
	OTP string `json:"otp"`
}

// ResetPasswordRequest is the body of POST /api/reset-password.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// IdentifierRequest is the body of POST /api/resend-forgot-otp.
type IdentifierRequest struct {
	Identifier string `json:"identifier"`
}

// MessageResponse is the generic success body of the API.
type MessageResponse struct {
	Message string `json:"message,omitempty"`
}

// errorBody is the failure body of the API. Either field may be present.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
