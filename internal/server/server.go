package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/handlers"
	appmiddleware "github.com/nfrund/hallrush/internal/middleware"
	"github.com/nfrund/hallrush/internal/module"
	"github.com/nfrund/hallrush/internal/rendering"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     *config.Config
	modules []module.Module
}

// Dependencies are the services the server needs before modules boot.
type Dependencies struct {
	Config   *config.Config
	Renderer *rendering.UniversalRenderer
	// Echo is optional; tests pass their own instance.
	Echo *echo.Echo
}

// New creates a new Server instance.
func New(deps Dependencies) (*Server, error) {
	if deps.Config == nil {
		return nil, fmt.Errorf("server: config is required")
	}

	e := deps.Echo
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(appmiddleware.Logger)

	// Configure and use session middleware
	store := sessions.NewCookieStore([]byte(deps.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))

	e.Validator = handlers.NewValidator()
	if deps.Renderer != nil {
		e.Renderer = deps.Renderer
	}
	setupErrorHandling(e)

	return &Server{E: e, Cfg: deps.Config}, nil
}

// setupErrorHandling logs unhandled errors with a stack trace. Errors that
// already carry an HTTP status are answered by echo's default handler.
func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if _, ok := err.(*echo.HTTPError); ok {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		slog.ErrorContext(c.Request().Context(), "Internal Server Error (Unhandled)",
			"error", err,
			"path", c.Request().URL.Path,
			"stack_trace", string(debug.Stack()),
		)
		if c.Request().Method == http.MethodHead {
			err = c.NoContent(http.StatusInternalServerError)
		} else {
			err = c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		if err != nil {
			slog.Error("Failed to write error response", "error", err)
		}
	}
}
