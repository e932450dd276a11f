// Package mediafiles persists media attachment rows. Each row belongs to
// exactly one collection item; the blob itself lives in object storage.
package mediafiles

import (
	"context"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.MediaFile, error)
	Create(ctx context.Context, file *models.MediaFile) (*models.MediaFile, error)
	Delete(ctx context.Context, ownerID, id string) error
	DeleteByItem(ctx context.Context, ownerID, itemID string) error
}
