package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// LoginRequest is the login form.
type LoginRequest struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// RegisterRequest is the registration form. Mobile is checked for format only.
type RegisterRequest struct {
	Username        string `form:"username" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Mobile          string `form:"mobile" validate:"required,len=10,number"`
	Password        string `form:"password" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"required"`
}

// OTPRequest is the code entry form of both verification screens.
type OTPRequest struct {
	OTP string `form:"otp" validate:"required"`
}

// ForgotPasswordRequest asks for a reset code.
type ForgotPasswordRequest struct {
	Identifier string `form:"identifier" validate:"required"`
}

// ResetPasswordRequest is the new password form.
type ResetPasswordRequest struct {
	NewPassword     string `form:"newPassword" validate:"required"`
	ConfirmPassword string `form:"confirmPassword" validate:"required"`
}

var fieldLabels = map[string]string{
	"Email":           "Email",
	"Password":        "Password",
	"Username":        "Username",
	"Mobile":          "Mobile number",
	"ConfirmPassword": "Confirm password",
	"OTP":             "OTP",
	"Identifier":      "Email or mobile number",
	"NewPassword":     "New password",
}

// bindForm binds the posted form into req and validates it. A validation
// failure comes back as a message for the page; anything else is an error.
func bindForm(c echo.Context, req interface{}) (string, error) {
	if err := c.Bind(req); err != nil {
		return "", err
	}
	err := c.Validate(req)
	if err == nil {
		return "", nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", err
	}
	return validationMessage(verrs[0]), nil
}

func validationMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return "Please enter a valid email address."
	case "len", "number":
		return fmt.Sprintf("%s must be exactly 10 digits.", label)
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
