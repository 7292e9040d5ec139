package reconciler

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wghub/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPHandler accepts push notifications relayed by the delivery service.
type HTTPHandler struct {
	reconciler *Reconciler
	logger     logging.Logger
}

func NewHTTPHandler(r *Reconciler, logger logging.Logger) *HTTPHandler {
	return &HTTPHandler{reconciler: r, logger: logger.With("module", "push")}
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the echo router serving h.
func NewRouter(h *HTTPHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			h.logger.Debug(c.Request().Context(), "request",
				"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.GET("/healthz", h.Health)
	e.POST("/v1/notifications", h.HandleNotification)
	return e
}

func (h *HTTPHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// HandleNotification reconciles the entity named in the request body.
func (h *HTTPHandler) HandleNotification(c echo.Context) error {
	var n Notification
	if err := c.Bind(&n); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed notification"})
	}
	if n.ID == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "missing id"})
	}

	err := h.reconciler.Handle(c.Request().Context(), n)
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, ErrUnknownFamily):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
}
