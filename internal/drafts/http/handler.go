package http

import (
	"net/http"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/fablecraft/fablecraft-backend/internal/drafts/domain"
	"github.com/fablecraft/fablecraft-backend/internal/drafts/service"
	"github.com/gin-gonic/gin"
)

// Handler exposes wizard draft recovery over HTTP. One autosave manager per
// flow group; the project public ID is the draft scope.
type Handler struct {
	managers map[string]*service.AutosaveManager
}

func NewHandler(managers map[string]*service.AutosaveManager) *Handler {
	return &Handler{managers: managers}
}

// RegisterProjectSubroutes attaches draft routes under the projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:public_id/draft/:flow", h.load)
	rg.PUT("/:public_id/draft/:flow", h.save)
	rg.DELETE("/:public_id/draft/:flow", h.discard)
}

type saveReq struct {
	Method   string                 `json:"method"`
	Data     map[string]interface{} `json:"data"`
	Progress float64                `json:"progress"`
}

func (h *Handler) save(c *gin.Context) {
	mgr, ok := h.managers[c.Param("flow")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown draft flow"})
		return
	}

	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !domain.IsValidMethod(req.Method) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid creation method"})
		return
	}
	if req.Data == nil {
		req.Data = make(map[string]interface{})
	}

	userID := auth.UserDBID(c)
	projectID := c.Param("public_id")

	mgr.Save(userID, projectID, req.Method, req.Data, clampProgress(req.Progress))

	c.JSON(http.StatusAccepted, gin.H{"ok": true, "saving": true})
}

func (h *Handler) load(c *gin.Context) {
	mgr, ok := h.managers[c.Param("flow")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown draft flow"})
		return
	}

	userID := auth.UserDBID(c)
	projectID := c.Param("public_id")

	draft := mgr.Load(c.Request.Context(), userID, projectID)

	c.JSON(http.StatusOK, gin.H{
		"ok":     true,
		"draft":  draft,
		"saving": mgr.Saving(userID, projectID),
	})
}

func (h *Handler) discard(c *gin.Context) {
	mgr, ok := h.managers[c.Param("flow")]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown draft flow"})
		return
	}

	mgr.Discard(c.Request.Context(), auth.UserDBID(c), c.Param("public_id"))

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
