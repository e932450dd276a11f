package items

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*models.CollectionItem
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*models.CollectionItem)}
}

func (r *MemoryRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.CollectionItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.CollectionItem
	for _, i := range r.items {
		if i.OwnerID == ownerID {
			result = append(result, i.Clone())
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := item.Clone()
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	// media rows live in the mediafiles repository
	c.MediaFiles = nil
	r.items[c.ID] = c

	result := c.Clone()
	result.MediaFiles = item.MediaFiles
	result.ID = c.ID
	result.CreatedAt = c.CreatedAt
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, item *models.CollectionItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[item.ID]
	if !ok || existing.OwnerID != item.OwnerID {
		return common.ErrNotFound
	}

	c := item.Clone()
	c.MediaFiles = nil
	c.CreatedAt = existing.CreatedAt
	r.items[item.ID] = c
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.items[id]; ok && i.OwnerID == ownerID {
		delete(r.items, id)
	}
	return nil
}

func (r *MemoryRepository) UpdateCategoryName(ctx context.Context, ownerID, categoryID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, i := range r.items {
		if i.OwnerID == ownerID && i.CategoryID == categoryID {
			i.CategoryName = name
		}
	}
	return nil
}
