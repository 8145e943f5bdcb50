package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bizdash/internal/auth"
	"bizdash/internal/config"
	"bizdash/internal/handler"
)

// webRoot holds the dashboard pages and static assets.
const webRoot = "web"

// Register wires routes and middleware. The route guard gates page
// navigations only; the JSON API and static assets sit outside it, and the
// protected API group is gated by echo-jwt reading the same session cookie.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	guard *auth.RouteGuard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Static("/static", webRoot+"/static")

	// Dashboard pages, all behind the route guard.
	pages := e.Group("", guard.Middleware())
	pages.GET("/", page("index.html"))
	pages.GET("/orders", page("orders.html"))
	pages.GET("/customers", page("customers.html"))
	pages.GET("/inventory", page("inventory.html"))
	pages.GET("/login", page("login.html"))
	pages.GET("/register", page("register.html"))
	pages.GET("/forgot-password", page("forgot-password.html"))
	pages.POST("/login", authHandler.Login)
	pages.POST("/logout", authHandler.Logout)

	api := e.Group("/api")

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// User CRUD
	api.GET("/users", userHandler.ListUsers)
	api.GET("/users/:id", userHandler.GetUser)
	api.POST("/users", userHandler.CreateUser)
	api.PUT("/users/:id", userHandler.UpdateUser)
	api.DELETE("/users/:id", userHandler.DeleteUser)

	// Secured routes (require a valid session token cookie)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.SessionCookieName,
	}))

	secured.GET("/me", func(c echo.Context) error {
		token, ok := c.Get("user").(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		claims, _ := token.Claims.(jwt.MapClaims)
		return c.JSON(http.StatusOK, echo.Map{"token_claims": claims})
	})
}

func page(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.File(webRoot + "/" + name)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
