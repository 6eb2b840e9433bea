package handlers

import (
	"net/http"

	"lirivelle/internal/apperr"
	"lirivelle/internal/models"
	"lirivelle/internal/services"
	"lirivelle/internal/store"
	"lirivelle/internal/utils"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	contents *services.ContentService
}

func NewContentHandler(contents *services.ContentService) *ContentHandler {
	return &ContentHandler{contents: contents}
}

// List answers GET /contents?type=&category=&page=
func (h *ContentHandler) List(c *gin.Context) {
	filter := store.ContentFilter{
		Type:     models.ContentType(c.Query("type")),
		Category: c.Query("category"),
	}
	page, err := h.contents.List(c.Request.Context(), filter, utils.StringToInt(c.Query("page"), 1))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{
		"data":      page.Items,
		"total":     page.Total,
		"page":      page.Page,
		"page_size": page.PageSize,
	})
}

// Detail answers GET /contents/:id with the type-specific payload alongside.
func (h *ContentHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, apperr.Validation("invalid content id"))
		return
	}
	item, err := h.contents.Get(c.Request.Context(), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	v := item.Variant()
	RespondOK(c, http.StatusOK, gin.H{
		"data": item,
		"variant": gin.H{
			"kind":    models.VariantKind(v),
			"payload": v,
		},
	})
}

// Search answers GET /search?q=&type=
func (h *ContentHandler) Search(c *gin.Context) {
	items, err := h.contents.Search(c.Request.Context(), c.Query("q"), models.ContentType(c.Query("type")))
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"data": items})
}

func (h *ContentHandler) Categories(c *gin.Context) {
	RespondOK(c, http.StatusOK, gin.H{"data": models.Categories})
}

func (h *ContentHandler) Create(c *gin.Context) {
	var in services.CreateContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}
	item, err := h.contents.Create(c.Request.Context(), in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, gin.H{"data": item})
}

func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, apperr.Validation("invalid content id"))
		return
	}
	var in services.UpdateContentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, apperr.Validation("invalid request body"))
		return
	}
	item, err := h.contents.Update(c.Request.Context(), id, in)
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{"data": item})
}

// Delete removes the item and its whole comment thread.
func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseID(c.Param("id"))
	if !ok {
		RespondError(c, apperr.Validation("invalid content id"))
		return
	}
	if err := h.contents.Delete(c.Request.Context(), id); err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil)
}
