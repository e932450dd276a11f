package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type wishlistCreateRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId" binding:"required"`
}

type wishlistUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CategoryID  *string  `json:"categoryId"`
}

func (h *Handler) ListWishlist(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	items := s.WishlistItems()
	result := make([]WishlistItemDTO, 0, len(items))
	for _, w := range items {
		result = append(result, toWishlistItemDTO(w))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) CreateWishlistItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req wishlistCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	created, err := s.AddWishlistItem(c.Request.Context(), &models.WishlistItem{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toWishlistItemDTO(created))
}

func (h *Handler) UpdateWishlistItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req wishlistUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	updated, err := s.UpdateWishlistItem(c.Request.Context(), c.Param("id"), models.WishlistItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWishlistItemDTO(updated))
}

func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	if err := s.DeleteWishlistItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
