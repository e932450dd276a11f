package categories

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*models.Category
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{categories: make(map[string]*models.Category)}
}

func (r *MemoryRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Category
	for _, c := range r.categories {
		if c.OwnerID == ownerID {
			clone := *c
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.categories {
		if c.OwnerID == category.OwnerID && c.Name == category.Name {
			return nil, common.ErrAlreadyExists
		}
	}

	c := *category
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.categories[c.ID] = &c

	result := c
	return &result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[category.ID]
	if !ok || existing.OwnerID != category.OwnerID {
		return common.ErrNotFound
	}

	existing.Name = category.Name
	existing.Description = category.Description
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.categories[id]; ok && c.OwnerID == ownerID {
		delete(r.categories, id)
	}
	return nil
}
