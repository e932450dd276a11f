package items

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/collectkeeper/internal/common"
	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.CollectionItem, error) {
	query :=
		`SELECT id, owner_id, name, description, condition, price, acquisition_date,
		        category_id, category_name, notes, created_at
		 FROM collection_items
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CollectionItem
	for rows.Next() {
		i := &models.CollectionItem{}
		err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Condition, &i.Price,
			&i.AcquisitionDate, &i.CategoryID, &i.CategoryName, &i.Notes, &i.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, i)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.CollectionItem) (*models.CollectionItem, error) {

	query :=
		`INSERT INTO collection_items (owner_id, name, description, condition, price,
		        acquisition_date, category_id, category_name, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.OwnerID, item.Name, item.Description, item.Condition, item.Price,
		item.AcquisitionDate, item.CategoryID, item.CategoryName, item.Notes).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.CollectionItem) error {
	query :=
		`UPDATE collection_items
		 SET name = $1, description = $2, condition = $3, price = $4,
		     acquisition_date = $5, category_id = $6, category_name = $7, notes = $8
		 WHERE owner_id = $9 AND id = $10
		 `

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Condition, item.Price,
		item.AcquisitionDate, item.CategoryID, item.CategoryName, item.Notes,
		item.OwnerID, item.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM collection_items WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateCategoryName(ctx context.Context, ownerID, categoryID, name string) error {
	query :=
		`UPDATE collection_items SET category_name = $1
		 WHERE owner_id = $2 AND category_id = $3
		 `

	_, err := r.db.ExecContext(ctx, query, name, ownerID, categoryID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
