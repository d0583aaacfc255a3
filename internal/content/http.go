package content

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches content routes to the given group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/genres", h.genres)
	rg.GET("/daily", h.daily)
}

func (h *Handler) genres(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "genres": Genres})
}

func (h *Handler) daily(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "daily": h.svc.Daily()})
}
