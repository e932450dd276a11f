package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.Report, error) {
	query :=
		`SELECT id, owner_id, name, type, start_date, end_date, category_id, created_at
		 FROM reports
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Report
	for rows.Next() {
		rep := &models.Report{}
		var start, end sql.NullTime
		var categoryID sql.NullString
		err := rows.Scan(&rep.ID, &rep.OwnerID, &rep.Name, &rep.Type, &start, &end, &categoryID, &rep.CreatedAt)
		if err != nil {
			return nil, err
		}
		rep.StartDate = start.Time
		rep.EndDate = end.Time
		rep.CategoryID = categoryID.String
		result = append(result, rep)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, report *models.Report) (*models.Report, error) {

	query :=
		`INSERT INTO reports (owner_id, name, type, start_date, end_date, category_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		report.OwnerID, report.Name, report.Type,
		nullTime(report.StartDate), nullTime(report.EndDate), nullString(report.CategoryID)).
		Scan(&report.ID, &report.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return report, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM reports WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
