package mediafiles

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu    sync.RWMutex
	files map[string]*models.MediaFile
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{files: make(map[string]*models.MediaFile)}
}

func (r *MemoryRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.MediaFile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.MediaFile
	for _, m := range r.files {
		if m.OwnerID == ownerID {
			c := *m
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, file *models.MediaFile) (*models.MediaFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *file
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	r.files[c.ID] = &c

	result := c
	return &result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.files[id]; ok && m.OwnerID == ownerID {
		delete(r.files, id)
	}
	return nil
}

func (r *MemoryRepository) DeleteByItem(ctx context.Context, ownerID, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for k, m := range r.files {
		if m.OwnerID == ownerID && m.ItemID == itemID {
			delete(r.files, k)
		}
	}
	return nil
}
