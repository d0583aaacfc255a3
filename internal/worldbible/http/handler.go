package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/fablecraft/fablecraft-backend/internal/worldbible/domain"
	"github.com/gin-gonic/gin"
)

// EntityStore is the repository surface the handlers need.
type EntityStore interface {
	Create(ctx context.Context, e *domain.Entity) error
	GetByID(ctx context.Context, id string) (*domain.Entity, error)
	ListByProject(ctx context.Context, projectID, entityType string) ([]domain.Entity, error)
	Update(ctx context.Context, e *domain.Entity) error
	Delete(ctx context.Context, id string) error
}

// DraftDiscarder removes the recoverable wizard draft once the real entity
// exists server-side.
type DraftDiscarder interface {
	Discard(ctx context.Context, userID, projectID string)
}

type Handler struct {
	repo   EntityStore
	drafts DraftDiscarder
}

func NewHandler(repo EntityStore, drafts DraftDiscarder) *Handler {
	return &Handler{repo: repo, drafts: drafts}
}

// RegisterProjectSubroutes attaches entity routes under the projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:public_id/entities/:type", h.list)
	rg.POST("/:public_id/entities/:type", h.create)
	rg.GET("/:public_id/entities/:type/fields", h.fields)
}

// Register attaches by-id routes at the API root.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/entities/:id", h.get)
	rg.PUT("/entities/:id", h.update)
	rg.DELETE("/entities/:id", h.delete)
}

type entityReq struct {
	Name string                 `json:"name"`
	Data map[string]interface{} `json:"data"`
}

func (h *Handler) create(c *gin.Context) {
	entityType := c.Param("type")
	if !domain.IsValidType(entityType) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown entity type"})
		return
	}

	var req entityReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Data == nil {
		req.Data = make(map[string]interface{})
	}

	projectID := c.Param("public_id")
	e := &domain.Entity{
		ProjectID:  projectID,
		EntityType: entityType,
		Name:       strings.TrimSpace(req.Name),
		Data:       req.Data,
	}

	if err := h.repo.Create(c.Request.Context(), e); err != nil {
		// The wizard draft is kept on failure so the user can retry.
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.drafts.Discard(c.Request.Context(), auth.UserDBID(c), projectID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "entity": e})
}

func (h *Handler) list(c *gin.Context) {
	entityType := c.Param("type")
	if !domain.IsValidType(entityType) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown entity type"})
		return
	}

	items, err := h.repo.ListByProject(c.Request.Context(), c.Param("public_id"), entityType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entities": items})
}

func (h *Handler) fields(c *gin.Context) {
	fields := domain.FieldsFor(c.Param("type"))
	if fields == nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown entity type"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "fields": fields})
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err == domain.ErrEntityNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "entity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entity": e})
}

func (h *Handler) update(c *gin.Context) {
	e, err := h.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err == domain.ErrEntityNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "entity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var req entityReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	e.Name = strings.TrimSpace(req.Name)
	if req.Data != nil {
		e.Data = req.Data
	}

	if err := h.repo.Update(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "entity": e})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Request.Context(), c.Param("id"))
	if err == domain.ErrEntityNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "entity not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
