package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/auth_service/internal/handlers"
	authmw "github.com/Skotchmaster/auth_service/internal/middleware/auth"
	"github.com/Skotchmaster/auth_service/internal/roles"
)

type Deps struct {
	DB           *gorm.DB
	AuthHandler  *handlers.AuthHandler
	BoardHandler *handlers.BoardHandler
	Gate         *authmw.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", d.AuthHandler.Signup)
	auth.POST("/signin", d.AuthHandler.Signin)

	test := api.Group("/test")
	test.GET("/all", d.BoardHandler.AllAccess)
	test.GET("/user", d.BoardHandler.UserBoard, d.Gate.RequireToken)
	test.GET("/mod", d.BoardHandler.ModeratorBoard, d.Gate.RequireToken,
		d.Gate.RequireAnyRole("Require Moderator Role!", roles.RoleModerator))
	test.GET("/admin", d.BoardHandler.AdminBoard, d.Gate.RequireToken,
		d.Gate.RequireAnyRole("Require Admin Role!", roles.RoleAdmin))
}
