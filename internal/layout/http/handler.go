package http

import (
	"net/http"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/fablecraft/fablecraft-backend/internal/layout/domain"
	"github.com/fablecraft/fablecraft-backend/internal/layout/service"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches layout routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/:group", h.load)
	rg.POST("/:group/unlock", h.unlock)
	rg.POST("/:group/lock", h.lock)
	rg.POST("/:group/reorder", h.reorder)
}

func (h *Handler) load(c *gin.Context) {
	userID := auth.UserDBID(c)
	group := c.Param("group")

	items, err := h.svc.Load(c.Request.Context(), userID, group)
	if err == domain.ErrUnknownGroup {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown layout group"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"items":    items,
		"unlocked": h.svc.IsUnlocked(userID, group),
	})
}

type reorderReq struct {
	DraggedID string `json:"dragged_id"`
	TargetID  string `json:"target_id"`
}

func (h *Handler) reorder(c *gin.Context) {
	var req reorderReq
	if err := c.ShouldBindJSON(&req); err != nil || req.DraggedID == "" || req.TargetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	items, err := h.svc.Reorder(c.Request.Context(), userID, c.Param("group"), req.DraggedID, req.TargetID)
	switch err {
	case nil:
	case domain.ErrUnknownGroup:
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown layout group"})
		return
	case domain.ErrLayoutLocked:
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": "layout is locked"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "items": items})
}

func (h *Handler) unlock(c *gin.Context) {
	if err := h.svc.Unlock(auth.UserDBID(c), c.Param("group")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown layout group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "unlocked": true})
}

func (h *Handler) lock(c *gin.Context) {
	if err := h.svc.Lock(auth.UserDBID(c), c.Param("group")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown layout group"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "unlocked": false})
}
