package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/auth_service/internal/apperr"
	"github.com/Skotchmaster/auth_service/internal/logging"
	"github.com/Skotchmaster/auth_service/internal/service"
)

type AuthHandler struct {
	Svc *service.AuthService
}

type signupRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signup")

	var req signupRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signup_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Signup(ctx, req.Username, req.Email, req.Password, req.Roles); err != nil {
		return echo.NewHTTPError(apperr.HTTPStatus(err), signupMessage(err))
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "User was registered successfully!",
	})
}

func (h *AuthHandler) Signin(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_signin")

	var req signinRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("signin_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Signin(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User Not found.")
		case errors.Is(err, apperr.ErrInvalidPassword):
			// the signin contract includes an explicit null token on 401
			return c.JSON(http.StatusUnauthorized, echo.Map{
				"accessToken": nil,
				"message":     "Invalid Password!",
			})
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error.")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":          res.ID,
		"username":    res.Username,
		"email":       res.Email,
		"roles":       res.Roles,
		"accessToken": res.AccessToken,
	})
}

func signupMessage(err error) string {
	var unknownRole *apperr.UnknownRoleError
	switch {
	case errors.Is(err, apperr.ErrDuplicateUsername):
		return "Failed! Username is already in use!"
	case errors.Is(err, apperr.ErrDuplicateEmail):
		return "Failed! Email is already in use!"
	case errors.As(err, &unknownRole):
		return "Failed! Role does not exist = " + unknownRole.Name
	default:
		return "Internal Server Error."
	}
}
