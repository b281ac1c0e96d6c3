package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planejaula/planejaula-api/internal/core/domain"
	"github.com/planejaula/planejaula-api/internal/core/ports"
)

// AuthHandler handles registration, login and profile routes.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new teacher account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  failureResponse
// @Failure      500   {object}  failureResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to create user",
			Error:   err.Error(),
		})
	}

	token, user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		School:   req.School,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return c.JSON(http.StatusBadRequest, failureResponse{Message: "email already registered"})
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusInternalServerError, failureResponse{
				Message: "failed to create user",
				Error:   ve.Message,
			})
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to create user",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusCreated, authResponse{
		Success: true,
		Message: "user created successfully",
		Token:   token,
		User:    user,
	})
}

// Login authenticates a user. Unknown email and wrong password produce the
// same message so neither case is distinguishable from outside.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  failureResponse
// @Failure      500   {object}  failureResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, failureResponse{Message: "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, failureResponse{Message: "email or password incorrect"})
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to login",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, authResponse{
		Success: true,
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

// Profile returns the authenticated user, password excluded.
//
// @Summary      Get the authenticated user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  failureResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	profile, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(http.StatusInternalServerError, failureResponse{
			Message: "failed to fetch profile",
			Error:   err.Error(),
		})
	}

	return c.JSON(http.StatusOK, profileResponse{Success: true, User: profile})
}
