package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/fablecraft/fablecraft-backend/internal/characters/domain"
	"github.com/gin-gonic/gin"
)

// CharacterStore is the repository surface the handlers need.
type CharacterStore interface {
	Create(ch *domain.Character) error
	GetByID(id string) (*domain.Character, error)
	ListByProject(projectID string) ([]domain.Character, error)
	Update(ch *domain.Character) error
	Delete(id string) error
}

// DraftDiscarder removes the recoverable wizard draft once the real entity
// exists server-side.
type DraftDiscarder interface {
	Discard(ctx context.Context, userID, projectID string)
}

type Handler struct {
	repo   CharacterStore
	drafts DraftDiscarder
}

func NewHandler(repo CharacterStore, drafts DraftDiscarder) *Handler {
	return &Handler{repo: repo, drafts: drafts}
}

// RegisterProjectSubroutes attaches list/create under the projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.GET("/:public_id/characters", h.list)
	rg.POST("/:public_id/characters", h.create)
}

// Register attaches by-id routes at the API root, matching the original
// client's PUT /api/characters/:id shape.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/characters/:id", h.get)
	rg.PUT("/characters/:id", h.update)
	rg.DELETE("/characters/:id", h.delete)
}

type characterReq struct {
	Name        string                 `json:"name"`
	Role        string                 `json:"role"`
	OneLine     string                 `json:"one_line"`
	Description string                 `json:"description"`
	Tags        []string               `json:"tags"`
	Details     map[string]interface{} `json:"details"`
}

func (h *Handler) create(c *gin.Context) {
	var req characterReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	projectID := c.Param("public_id")
	ch := &domain.Character{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(req.Name),
		Role:        req.Role,
		OneLine:     req.OneLine,
		Description: req.Description,
		Tags:        req.Tags,
		Details:     req.Details,
	}

	if err := h.repo.Create(ch); err != nil {
		// The wizard draft is kept on failure so the user can retry.
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	// The character now exists server-side; the recoverable draft for this
	// project must not resurface.
	h.drafts.Discard(c.Request.Context(), auth.UserDBID(c), projectID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "character": ch})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.repo.ListByProject(c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "characters": items})
}

func (h *Handler) get(c *gin.Context) {
	ch, err := h.repo.GetByID(c.Param("id"))
	if err == domain.ErrCharacterNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "character not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "character": ch})
}

func (h *Handler) update(c *gin.Context) {
	ch, err := h.repo.GetByID(c.Param("id"))
	if err == domain.ErrCharacterNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "character not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	var req characterReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	ch.Name = strings.TrimSpace(req.Name)
	ch.Role = req.Role
	ch.OneLine = req.OneLine
	ch.Description = req.Description
	ch.Tags = req.Tags
	ch.Details = req.Details

	if err := h.repo.Update(ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "character": ch})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.repo.Delete(c.Param("id"))
	if err == domain.ErrCharacterNotFound {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "character not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
