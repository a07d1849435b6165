package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/virtexvirtuoso/virtuoso-core/internal/usecase"
	"github.com/virtexvirtuoso/virtuoso-core/pkg/logger"
)

// SignalsHandler exposes the engine's latest results for operational
// inspection. Serving dashboards or alerts is out of scope; these
// routes exist so an operator can see what the engine last decided.
type SignalsHandler struct {
	log   *logger.Logger
	store *usecase.ResultStore
}

func NewSignalsHandler(log *logger.Logger, store *usecase.ResultStore) *SignalsHandler {
	return &SignalsHandler{log: log, store: store}
}

// RegisterRoutes wires the handler onto an echo instance.
func (h *SignalsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.health)
	e.GET("/signals/latest", h.latest)
	e.GET("/signals/:symbol", h.bySymbol)
}

func (h *SignalsHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *SignalsHandler) latest(c echo.Context) error {
	return c.JSON(http.StatusOK, h.store.All())
}

func (h *SignalsHandler) bySymbol(c echo.Context) error {
	symbol := c.Param("symbol")
	res, ok := h.store.Latest(symbol)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{
			"error": "no result for symbol " + symbol,
		})
	}
	return c.JSON(http.StatusOK, res)
}
