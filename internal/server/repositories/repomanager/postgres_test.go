package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/categories"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/items"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/mediafiles"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/reports"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/collectkeeper/internal/server/repositories/wishlist"
	"github.com/pressly/goose/v3"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	m := NewPostgresRepositoryManager()
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{}

	var _ users.Repository = m.Users(db)
	var _ refreshtokens.Repository = m.RefreshTokens(db)
	var _ categories.Repository = m.Categories(db)
	var _ items.Repository = m.Items(db)
	var _ wishlist.Repository = m.Wishlist(db)
	var _ mediafiles.Repository = m.MediaFiles(db)
	var _ reports.Repository = m.Reports(db)

	if m.Users(db) == nil || m.Categories(db) == nil || m.Reports(db) == nil {
		t.Fatal("factory returned nil repository")
	}
}

func TestInMemoryManager_VendsSingletons(t *testing.T) {
	m := NewInMemoryRepositoryManager()

	if m.Categories(nil) != m.Categories(nil) {
		t.Fatal("in-memory repos must be singletons")
	}
	if err := m.RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("in-memory migrations must be a no-op: %v", err)
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
