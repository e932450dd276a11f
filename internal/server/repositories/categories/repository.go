// Package categories persists the owner's category set. Categories are the
// referent of the category_name cache kept on collection and wishlist items.
package categories

import (
	"context"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Category, error)
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, ownerID, id string) error
}
