package http

import (
	"log/slog"
	"net/http"

	"fulfillment/internal/adapters/in/http/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API described by doc, the
// health probe, and the Swagger UI.
func NewRouter(server api.ServerInterface, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	validate, err := OpenAPIRequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(logger))
	e.Use(validate)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api.RegisterHandlers(e, server)

	return e, nil
}
