package reports

import (
	"context"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type Repository interface {
	SelectByOwner(ctx context.Context, ownerID string) ([]*models.Report, error)
	Create(ctx context.Context, report *models.Report) (*models.Report, error)
	Delete(ctx context.Context, ownerID, id string) error
}
