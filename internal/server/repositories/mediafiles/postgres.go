package mediafiles

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/collectkeeper/internal/dbx"
	"github.com/dmitrijs2005/collectkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectByOwner(ctx context.Context, ownerID string) ([]*models.MediaFile, error) {
	query :=
		`SELECT id, item_id, owner_id, name, type, url, thumbnail_url, storage_key, created_at
		 FROM media_files
		 WHERE owner_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.MediaFile
	for rows.Next() {
		m := &models.MediaFile{}
		err := rows.Scan(&m.ID, &m.ItemID, &m.OwnerID, &m.Name, &m.Type, &m.URL,
			&m.ThumbnailURL, &m.StorageKey, &m.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, file *models.MediaFile) (*models.MediaFile, error) {

	query :=
		`INSERT INTO media_files (item_id, owner_id, name, type, url, thumbnail_url, storage_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.ItemID, file.OwnerID, file.Name, file.Type, file.URL,
		file.ThumbnailURL, file.StorageKey).Scan(&file.ID, &file.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return file, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM media_files WHERE owner_id = $1 AND id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) DeleteByItem(ctx context.Context, ownerID, itemID string) error {
	query := `DELETE FROM media_files WHERE owner_id = $1 AND item_id = $2`

	_, err := r.db.ExecContext(ctx, query, ownerID, itemID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
