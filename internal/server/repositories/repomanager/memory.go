package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/mediafiles"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/wishlist"
)

// InMemoryRepositoryManager holds singleton map-backed repositories. It is
// the "local" persistence adapter: everything lives in process memory, the
// DB handle arguments are ignored, and migrations are a no-op.
type InMemoryRepositoryManager struct {
	users         *users.MemoryRepository
	refreshTokens *refreshtokens.MemoryRepository
	categories    *categories.MemoryRepository
	items         *items.MemoryRepository
	wishlist      *wishlist.MemoryRepository
	mediaFiles    *mediafiles.MemoryRepository
	reports       *reports.MemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return m.refreshTokens
}

func (m *InMemoryRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return m.categories
}

func (m *InMemoryRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return m.items
}

func (m *InMemoryRepositoryManager) Wishlist(db dbx.DBTX) wishlist.Repository {
	return m.wishlist
}

func (m *InMemoryRepositoryManager) MediaFiles(db dbx.DBTX) mediafiles.Repository {
	return m.mediaFiles
}

func (m *InMemoryRepositoryManager) Reports(db dbx.DBTX) reports.Repository {
	return m.reports
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users:         users.NewMemoryRepository(),
		refreshTokens: refreshtokens.NewMemoryRepository(),
		categories:    categories.NewMemoryRepository(),
		items:         items.NewMemoryRepository(),
		wishlist:      wishlist.NewMemoryRepository(),
		mediaFiles:    mediafiles.NewMemoryRepository(),
		reports:       reports.NewMemoryRepository(),
	}
}
