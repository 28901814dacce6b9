package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthHandler answers liveness probes for the development API.
type HealthHandler struct {
	service string
	started time.Time
}

func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{service: service, started: time.Now()}
}

func (h *HealthHandler) Check(c *gin.Context) {
	if c.Request.Method == http.MethodHead {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.service,
		"uptime":  time.Since(h.started).Truncate(time.Second).String(),
	})
}
