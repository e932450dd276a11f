package wishlist

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

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.WishlistItem, error) {
	query :=
		`SELECT id, owner_id, name, description, price, category_id, category_name, created_at
		 FROM wishlist_items
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.WishlistItem
	for rows.Next() {
		i := &models.WishlistItem{}
		err := rows.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Description, &i.Price,
			&i.CategoryID, &i.CategoryName, &i.CreatedAt)
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

func (r *PostgresRepository) Create(ctx context.Context, item *models.WishlistItem) (*models.WishlistItem, error) {

	query :=
		`INSERT INTO wishlist_items (owner_id, name, description, price, category_id, category_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.OwnerID, item.Name, item.Description, item.Price,
		item.CategoryID, item.CategoryName).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, item *models.WishlistItem) error {
	query :=
		`UPDATE wishlist_items
		 SET name = $1, description = $2, price = $3, category_id = $4, category_name = $5
		 WHERE owner_id = $6 AND id = $7
		 `

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Description, item.Price, item.CategoryID, item.CategoryName,
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
	query := `DELETE FROM wishlist_items WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateCategoryName(ctx context.Context, ownerID, categoryID, name string) error {
	query :=
		`UPDATE wishlist_items SET category_name = $1
		 WHERE owner_id = $2 AND category_id = $3
		 `

	_, err := r.db.ExecContext(ctx, query, name, ownerID, categoryID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
