package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const pingTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Driver  string            `json:"driver,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports whether the library store answers.
type HealthController struct {
	store   Pinger
	driver  string
	version string
}

func NewHealthController(store Pinger, driver, version string) *HealthController {
	return &HealthController{
		store:   store,
		driver:  driver,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Driver:  h.driver,
		Checks:  map[string]string{"database": h.checkStore(c.Request.Context())},
	}

	statusCode := http.StatusOK
	if resp.Checks["database"] != "ok" && h.store != nil {
		resp.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, resp)
}

func (h *HealthController) checkStore(ctx context.Context) string {
	if h.store == nil {
		return "not configured"
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
