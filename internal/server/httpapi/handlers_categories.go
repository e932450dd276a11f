package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/dmitrijs2005/collectkeeper/internal/server/store"
	"github.com/gin-gonic/gin"
)

type categoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ownerStore resolves the signed-in owner's open store; a missing session
// surfaces as 401.
func (h *Handler) ownerStore(c *gin.Context) (*store.Store, bool) {
	s, err := h.stores.Get(userID(c))
	if err != nil {
		writeError(c, err)
		return nil, false
	}
	return s, true
}

func (h *Handler) ListCategories(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	cats := s.Categories()
	result := make([]CategoryDTO, 0, len(cats))
	for _, cat := range cats {
		result = append(result, toCategoryDTO(cat))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req categoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	created, err := s.AddCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCategoryDTO(created))
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req categoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	updated, err := s.UpdateCategory(c.Request.Context(), c.Param("id"), models.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryDTO(updated))
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	if err := s.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
