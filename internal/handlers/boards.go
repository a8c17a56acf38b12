package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BoardHandler serves the access-tier demo content behind each gate
// configuration.
type BoardHandler struct{}

func (h *BoardHandler) AllAccess(c echo.Context) error {
	return c.String(http.StatusOK, "Public Content.")
}

func (h *BoardHandler) UserBoard(c echo.Context) error {
	return c.String(http.StatusOK, "User Content.")
}

func (h *BoardHandler) ModeratorBoard(c echo.Context) error {
	return c.String(http.StatusOK, "Moderator Content.")
}

func (h *BoardHandler) AdminBoard(c echo.Context) error {
	return c.String(http.StatusOK, "Admin Content.")
}
