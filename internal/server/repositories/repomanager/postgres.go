// Package repomanager provides concrete RepositoryManager implementations:
// one for PostgreSQL (wiring repository constructors and goose migrations)
// and a process-local in-memory one.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/mediafiles"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/wishlist"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Categories(db dbx.DBTX) categories.Repository {
	return categories.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Items(db dbx.DBTX) items.Repository {
	return items.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Wishlist(db dbx.DBTX) wishlist.Repository {
	return wishlist.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) MediaFiles(db dbx.DBTX) mediafiles.Repository {
	return mediafiles.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reports(db dbx.DBTX) reports.Repository {
	return reports.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
