package store

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/logging"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/repomanager"
)

// Manager keeps at most one open Store per signed-in owner. A store is
// opened on login and closed on logout; operations between the two reach
// the same loaded instance.
type Manager struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	logger logging.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(db *sql.DB, repos repomanager.RepositoryManager, logger logging.Logger) *Manager {
	return &Manager{
		db:     db,
		repos:  repos,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// Open returns the owner's store, loading it first if this is a fresh
// session. A failed load leaves no store registered.
func (m *Manager) Open(ctx context.Context, ownerID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[ownerID]; ok {
		return s, nil
	}

	s := New(ownerID, m.db, m.repos, m.logger)
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	m.stores[ownerID] = s
	return s, nil
}

// Get returns the owner's open store, or ErrNotAuthenticated when no
// session is active.
func (m *Manager) Get(ownerID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.stores[ownerID]
	if !ok {
		return nil, common.ErrNotAuthenticated
	}
	return s, nil
}

// Close discards the owner's store, if any.
func (m *Manager) Close(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[ownerID]; ok {
		s.Close()
		delete(m.stores, ownerID)
	}
}
