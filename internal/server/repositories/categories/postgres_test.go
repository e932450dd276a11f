package categories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestSelectByOwner_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*owner_id,\s*name,\s*description,\s*created_at\s+FROM\s+categories\s+WHERE\s+owner_id\s*=\s*\$1\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "name", "description", "created_at"}).
		AddRow("c-1", "o-1", "Coins", "Numismatic collection", now).
		AddRow("c-2", "o-1", "Books", "Literary collections", now)
	mock.ExpectQuery(q).WithArgs("o-1").WillReturnRows(rows)

	got, err := repo.SelectByOwner(context.Background(), "o-1")
	if err != nil {
		t.Fatalf("SelectByOwner error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "Coins" || got[1].Name != "Books" {
		t.Fatalf("unexpected categories: %+v", got)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+categories\s*\(owner_id,\s*name,\s*description\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*RETURNING\s+id,\s*created_at\s*$`

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at"}).AddRow("c-42", now)
	mock.ExpectQuery(q).WithArgs("o-1", "Stamps", "Philately").WillReturnRows(rows)

	got, err := repo.Create(context.Background(), &models.Category{OwnerID: "o-1", Name: "Stamps", Description: "Philately"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "c-42" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected category: %+v", got)
	}
}

func TestCreate_UniqueViolation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+categories`

	mock.ExpectQuery(q).
		WithArgs("o-1", "Coins", "").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), &models.Category{OwnerID: "o-1", Name: "Coins"})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+categories\s+SET\s+name\s*=\s*\$1,\s*description\s*=\s*\$2\s+WHERE\s+owner_id\s*=\s*\$3\s+AND\s+id\s*=\s*\$4\s*$`

	mock.ExpectExec(q).
		WithArgs("Rare Coins", "desc", "o-1", "c-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Category{ID: "c-1", OwnerID: "o-1", Name: "Rare Coins", Description: "desc"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+categories`

	mock.ExpectExec(q).
		WithArgs("Rare Coins", "", "o-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Category{ID: "missing", OwnerID: "o-1", Name: "Rare Coins"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+categories\s+WHERE\s+owner_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2\s*$`

	mock.ExpectExec(q).WithArgs("o-1", "c-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "o-1", "c-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}

func TestDelete_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+categories`

	mock.ExpectExec(q).WithArgs("o-1", "c-1").WillReturnError(errors.New("db down"))

	if err := repo.Delete(context.Background(), "o-1", "c-1"); err == nil {
		t.Fatalf("expected wrapped db error")
	}
}
