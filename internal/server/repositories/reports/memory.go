package reports

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	reports map[string]*models.Report
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reports: make(map[string]*models.Report)}
}

func (r *MemoryRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Report
	for _, rep := range r.reports {
		if rep.OwnerID == ownerID {
			c := *rep
			result = append(result, &c)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := *report
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	r.reports[c.ID] = &c

	result := c
	return &result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rep, ok := r.reports[id]; ok && rep.OwnerID == ownerID {
		delete(r.reports, id)
	}
	return nil
}
