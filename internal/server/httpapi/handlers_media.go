package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

type downloadURLRequest struct {
	StorageKey string `json:"storageKey" binding:"required"`
}

// MediaUploadURL hands the client a fresh storage key and a presigned PUT
// URL; the metadata record is created later through the item endpoints.
func (h *Handler) MediaUploadURL(c *gin.Context) {
	if _, ok := h.ownerStore(c); !ok {
		return
	}

	key, url, err := h.media.GetPresignedPutURL(c.Request.Context(), userID(c))
	if err != nil {
		h.logger.Error(c.Request.Context(), "presign upload failed", "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"storageKey": key, "url": url})
}

// MediaDownloadURL presigns a GET for a blob the owner already references.
func (h *Handler) MediaDownloadURL(c *gin.Context) {
	s, ok := h.ownerStore(c)
	if !ok {
		return
	}

	var req downloadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, fmt.Errorf("%w: %v", common.ErrValidation, err))
		return
	}

	// only keys referenced by the owner's media records are signable
	found := false
	for _, item := range s.CollectionItems() {
		for _, m := range item.MediaFiles {
			if m.StorageKey == req.StorageKey {
				found = true
				break
			}
		}
	}
	if !found {
		writeError(c, common.ErrNotFound)
		return
	}

	url, err := h.media.GetPresignedGetURL(c.Request.Context(), req.StorageKey)
	if err != nil {
		h.logger.Error(c.Request.Context(), "presign download failed", "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
