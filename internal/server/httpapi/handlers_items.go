package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type itemCreateRequest struct {
	Name            string         `json:"name" binding:"required"`
	Description     string         `json:"description"`
	Condition       string         `json:"condition" binding:"required"`
	Price           float64        `json:"price"`
	AcquisitionDate string         `json:"acquisitionDate" binding:"required"`
	CategoryID      string         `json:"categoryId" binding:"required"`
	Notes           string         `json:"notes"`
	MediaFiles      []MediaFileDTO `json:"mediaFiles"`
}

type itemUpdateRequest struct {
	Name            *string        `json:"name"`
	Description     *string        `json:"description"`
	Condition       *string        `json:"condition"`
	Price           *float64       `json:"price"`
	AcquisitionDate *string        `json:"acquisitionDate"`
	CategoryID      *string        `json:"categoryId"`
	Notes           *string        `json:"notes"`
	MediaFiles      []MediaFileDTO `json:"mediaFiles"`
}

func (h *Handler) ListItems(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	items := s.CollectionItems()
	result := make([]CollectionItemDTO, 0, len(items))
	for _, i := range items {
		result = append(result, toCollectionItemDTO(i))
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) GetItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	item, err := s.GetCollectionItemByID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionItemDTO(item))
}

func (h *Handler) CreateItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req itemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	date, err := parseDate(req.AcquisitionDate)
	if err != nil {
		writeError(c, err)
		return
	}
	media, err := mediaFilesFromDTO(req.MediaFiles)
	if err != nil {
		writeError(c, err)
		return
	}

	created, err := s.AddCollectionItem(c.Request.Context(), &models.CollectionItem{
		Name:            req.Name,
		Description:     req.Description,
		Condition:       models.Condition(req.Condition),
		Price:           req.Price,
		AcquisitionDate: date,
		CategoryID:      req.CategoryID,
		Notes:           req.Notes,
		MediaFiles:      media,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCollectionItemDTO(created))
}

func (h *Handler) UpdateItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req itemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	patch := models.CollectionItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
	}
	if req.Condition != nil {
		cond := models.Condition(*req.Condition)
		patch.Condition = &cond
	}
	if req.AcquisitionDate != nil {
		date, err := parseDate(*req.AcquisitionDate)
		if err != nil {
			writeError(c, err)
			return
		}
		patch.AcquisitionDate = &date
	}
	if req.MediaFiles != nil {
		media, err := mediaFilesFromDTO(req.MediaFiles)
		if err != nil {
			writeError(c, err)
			return
		}
		patch.MediaFiles = media
	}

	updated, err := s.UpdateCollectionItem(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCollectionItemDTO(updated))
}

func (h *Handler) DeleteItem(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	if err := s.DeleteCollectionItem(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
