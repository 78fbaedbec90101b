package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// MetaHandler serves the unauthenticated root endpoint.
type MetaHandler struct {
	version string
}

func NewMetaHandler(version string) *MetaHandler {
	return &MetaHandler{version: version}
}

// Root handles GET / — a small service banner.
func (h *MetaHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Focus Tracker API is running",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
