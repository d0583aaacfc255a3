package projects

import (
	"net/http"
	"strings"

	"github.com/fablecraft/fablecraft-backend/internal/auth"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo *Repo
}

func Register(rg *gin.RouterGroup, repo *Repo) {
	h := &Handler{repo: repo}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.get)
	rg.PATCH("/:public_id", h.update)
	rg.DELETE("/:public_id", h.delete)
}

type createReq struct {
	Name  string   `json:"name"`
	Type  string   `json:"type"`
	Genre []string `json:"genre"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Type != "novel" && req.Type != "screenplay" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "type must be novel or screenplay"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name), req.Type, req.Genre)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.repo.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	userID := auth.UserDBID(c)
	p, err := h.repo.Get(c.Request.Context(), userID, c.Param("public_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Synopsis    *string  `json:"synopsis"`
	Genre       []string `json:"genre"`
}

func (h *Handler) update(c *gin.Context) {
	publicID := c.Param("public_id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name cannot be empty"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.repo.Update(c.Request.Context(), userID, publicID, UpdateProject{
		Name:        req.Name,
		Description: req.Description,
		Synopsis:    req.Synopsis,
		Genre:       req.Genre,
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := c.Param("public_id")
	userID := auth.UserDBID(c)

	ok, err := h.repo.SoftDelete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
