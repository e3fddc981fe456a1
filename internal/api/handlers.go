// Package api contains the HTTP handlers for the read-only dashboard.
package api

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"apichain/internal/history"
)

//go:embed dashboard.html
var dashboardHTML string

var dashboardTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

// Handler contains HTTP handlers for the dashboard read surface.
type Handler struct {
	history history.Store
}

// NewHandler creates a new Handler reading from store.
func NewHandler(store history.Store) *Handler {
	return &Handler{history: store}
}

// Register mounts the dashboard routes on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.HandleDashboard)
	e.GET("/api/latest", h.HandleLatest)
	e.GET("/healthz", h.HandleHealth)
}

// HandleDashboard renders the most recent records as an HTML table, newest
// first.
func (h *Handler) HandleDashboard(c echo.Context) error {
	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, h.history.Recent(history.RecentLimit)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to render dashboard: "+err.Error())
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

// HandleLatest returns the most recent records as JSON, newest first.
func (h *Handler) HandleLatest(c echo.Context) error {
	return c.JSON(http.StatusOK, h.history.Recent(history.RecentLimit))
}

// HealthStatus represents the health check response.
type HealthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Records   int       `json:"records"`
}

// HandleHealth returns basic health status (always returns 200 OK).
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Service:   "apichain",
		Records:   h.history.Len(),
	})
}
