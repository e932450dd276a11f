package wishlist

import (
	"context"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.WishlistItem, error)
	Create(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error)
	Update(ctx context.Context, item *models.WishlistItem) error
	Delete(ctx context.Context, ownerID, id string) error

	// UpdateCategoryName refreshes the category_name cache on every wishlist
	// item of the owner referencing the given category.
	UpdateCategoryName(ctx context.Context, ownerID, categoryID, name string) error
}
