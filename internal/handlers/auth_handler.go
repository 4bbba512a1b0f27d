package handlers

import (
	"errors"
	"net/http"

	"smartbudget/internal/dto"
	apierrors "smartbudget/internal/errors"
	"smartbudget/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
//
// Method: POST /api/v1/auth/register
//
// Success Response: 201 Created with the new user's profile
//
// Error Responses:
//   - 400: Invalid request body or validation failure
//   - 422: Email already registered - AUTH_006
//   - 500: System error
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	profile, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			return SendError(c, apierrors.AuthEmailTaken)
		}
		if errors.Is(err, services.ErrPasswordTooShort) ||
			errors.Is(err, services.ErrPasswordTooLong) ||
			errors.Is(err, services.ErrPasswordEmpty) {
			return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Password does not meet the length requirements"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    profile,
		Message: "User registered successfully",
	})
}

// Login handles user authentication
//
// Method: POST /api/v1/auth/login
//
// Success Response: 200 OK with a Bearer access token
//
// Error Responses:
//   - 400: Invalid request body or validation failure
//   - 401: Invalid credentials - AUTH_001
//   - 500: System error
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.ValidationGeneral, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	tokens, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, apierrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, tokens)
}

// GetProfile returns the authenticated user's profile
//
// Method: GET /api/v1/auth/me
// Authentication: Required (JWT)
//
// Error Responses:
//   - 401: Missing or invalid token
//   - 500: System error
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apierrors.AuthMissingToken)
	}

	profile, err := h.authService.GetProfile(userID)
	if err != nil {
		// The token outlived its user; treat it as no longer valid
		if errors.Is(err, services.ErrUserNotFound) {
			return SendError(c, apierrors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: profile,
	})
}
