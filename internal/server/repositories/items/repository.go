// Package items persists the owner's collection items. Media file rows are
// managed separately by the mediafiles package; repositories here deal with
// the item row only.
package items

import (
	"context"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.CollectionItem, error)
	Create(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error)
	Update(ctx context.Context, item *models.CollectionItem) error
	Delete(ctx context.Context, ownerID, id string) error

	// UpdateCategoryName refreshes the category_name cache on every item of
	// the owner referencing the given category. Used by the rename cascade.
	UpdateCategoryName(ctx context.Context, ownerID, categoryID, name string) error
}
