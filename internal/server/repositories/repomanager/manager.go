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

// RepositoryManager vends repository implementations bound to a DB handle.
// Passing a transactional handle (from dbx.WithTx) makes the vended repos
// participate in that transaction; the in-memory manager ignores the handle.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Categories(db dbx.DBTX) categories.Repository
	Items(db dbx.DBTX) items.Repository
	Wishlist(db dbx.DBTX) wishlist.Repository
	MediaFiles(db dbx.DBTX) mediafiles.Repository
	Reports(db dbx.DBTX) reports.Repository
}
