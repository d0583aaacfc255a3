package http

import (
	"net/http"

	draftsvc "github.com/fablecraft/fablecraft-backend/internal/drafts/service"
	"github.com/fablecraft/fablecraft-backend/internal/generation"
	"github.com/gin-gonic/gin"
)

// MetricsHandler exposes the in-process counters for dashboards and smoke
// checks. Not a full metrics pipeline, just the numbers that matter here.
func MetricsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ok":         true,
		"drafts":     draftsvc.GetMetrics(),
		"generation": generation.GetMetrics(),
	})
}
