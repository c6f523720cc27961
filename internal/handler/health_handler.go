package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and database connectivity.
type HealthHandler struct {
	db      *gorm.DB
	service string
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *gorm.DB, service string) *HealthHandler {
	return &HealthHandler{db: db, service: service}
}

// RegisterRoutes registers the health endpoint on the router.
func (h *HealthHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Check)
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"service": h.service,
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
