package http

import (
	"context"
	"net/http"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	chardomain "github.com/fablecraft/fablecraft-backend/internal/characters/domain"
	"github.com/fablecraft/fablecraft-backend/internal/generation"
	"github.com/fablecraft/fablecraft-backend/internal/projects"
	wbdomain "github.com/fablecraft/fablecraft-backend/internal/worldbible/domain"
	"github.com/gin-gonic/gin"
)

// CharacterStore persists generated characters.
type CharacterStore interface {
	Create(ch *chardomain.Character) error
	ListByProject(projectID string) ([]chardomain.Character, error)
	SetPortraitURL(id, url string) error
}

// EntityStore persists generated world-bible entities.
type EntityStore interface {
	Create(ctx context.Context, e *wbdomain.Entity) error
}

// DraftDiscarder removes the wizard draft after a successful generation.
type DraftDiscarder interface {
	Discard(ctx context.Context, userID, projectID string)
}

// PortraitStore persists portrait images rendered by the upstream.
type PortraitStore interface {
	Enabled() bool
	Put(ctx context.Context, characterID string, png []byte) (string, error)
}

type Handler struct {
	client         *generation.Client
	projects       *projects.Repo
	characters     CharacterStore
	entities       EntityStore
	characterDraft DraftDiscarder
	entityDraft    DraftDiscarder
	portraits      PortraitStore
}

func NewHandler(
	client *generation.Client,
	projectRepo *projects.Repo,
	characters CharacterStore,
	entities EntityStore,
	characterDraft, entityDraft DraftDiscarder,
	portraits PortraitStore,
) *Handler {
	return &Handler{
		client:         client,
		projects:       projectRepo,
		characters:     characters,
		entities:       entities,
		characterDraft: characterDraft,
		entityDraft:    entityDraft,
		portraits:      portraits,
	}
}

// RegisterProjectSubroutes attaches generation routes under the projects group.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:public_id/characters/generate", h.generateCharacter)
	rg.POST("/:public_id/entities/:type/generate", h.generateEntity)
}

func (h *Handler) generateCharacter(c *gin.Context) {
	if !h.client.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "generation service not configured"})
		return
	}

	var opts generation.CharacterOptions
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	projectID := c.Param("public_id")

	pctx, err := h.projectContext(c, userID, projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	gen, err := h.client.GenerateCharacter(c.Request.Context(), *pctx, opts)
	if err != nil {
		// Generation failed before anything was persisted; the draft stays so
		// the user can retry.
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ch := &chardomain.Character{
		ProjectID:   projectID,
		Name:        gen.Name,
		Role:        gen.Role,
		OneLine:     gen.OneLine,
		Description: gen.Description,
		Tags:        gen.Tags,
		Details:     gen.Details,
	}
	if err := h.characters.Create(ch); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	if len(gen.PortraitPNG) > 0 && h.portraits.Enabled() {
		url, err := h.portraits.Put(c.Request.Context(), ch.ID, gen.PortraitPNG)
		if err != nil {
			// Portrait storage is best-effort; the character is already saved.
			generation.NewLogger(c.Request.Context()).LogWarnf("store_portrait", "failed: %v", err)
		} else if err := h.characters.SetPortraitURL(ch.ID, url); err != nil {
			generation.NewLogger(c.Request.Context()).LogWarnf("store_portrait", "update url failed: %v", err)
		} else {
			ch.PortraitURL = url
		}
	}

	h.characterDraft.Discard(c.Request.Context(), userID, projectID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "character": ch})
}

func (h *Handler) generateEntity(c *gin.Context) {
	if !h.client.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "generation service not configured"})
		return
	}

	entityType := c.Param("type")
	if !wbdomain.IsValidType(entityType) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "unknown entity type"})
		return
	}

	var opts map[string]interface{}
	if err := c.ShouldBindJSON(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	projectID := c.Param("public_id")

	pctx, err := h.projectContext(c, userID, projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	name, data, err := h.client.GenerateEntity(c.Request.Context(), entityType, *pctx, opts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": err.Error()})
		return
	}

	e := &wbdomain.Entity{
		ProjectID:  projectID,
		EntityType: entityType,
		Name:       name,
		Data:       data,
	}
	if err := h.entities.Create(c.Request.Context(), e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	h.entityDraft.Discard(c.Request.Context(), userID, projectID)

	c.JSON(http.StatusCreated, gin.H{"ok": true, "entity": e})
}

// projectContext assembles what the upstream model sees of the story world.
func (h *Handler) projectContext(c *gin.Context, userID, projectID string) (*generation.ProjectContext, error) {
	p, err := h.projects.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		return nil, err
	}

	names := []string{}
	if existing, err := h.characters.ListByProject(projectID); err == nil {
		for _, ch := range existing {
			names = append(names, ch.Name)
		}
	}

	return &generation.ProjectContext{
		Name:               p.Name,
		Type:               p.Type,
		Synopsis:           p.Synopsis,
		Genre:              p.Genre,
		ExistingCharacters: names,
	}, nil
}
