package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/dbx"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*models.Item, error) {
	var (
		item      models.Item
		lastPrice sql.NullFloat64
	)
	if err := row.Scan(&item.ProductURL, &item.UserID, &item.CreatedAt, &item.UpdatedAt, &lastPrice, &item.InStock); err != nil {
		return nil, err
	}
	if lastPrice.Valid {
		p := lastPrice.Float64
		item.LastPrice = &p
	}
	return &item, nil
}

func (r *PostgresRepository) Get(ctx context.Context, productURL string) (*models.Item, error) {
	query :=
		`SELECT product_url, user_id, created_at, updated_at, last_price, in_stock FROM tracked_items
		 WHERE product_url = $1
		 `

	item, err := scanItem(r.db.QueryRowContext(ctx, query, productURL))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return item, nil
}

func (r *PostgresRepository) Put(ctx context.Context, item *models.Item) error {
	query :=
		`INSERT INTO tracked_items (product_url, user_id, created_at, updated_at, last_price, in_stock)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (product_url) DO UPDATE SET
		   user_id = EXCLUDED.user_id,
		   created_at = EXCLUDED.created_at,
		   updated_at = EXCLUDED.updated_at,
		   last_price = EXCLUDED.last_price,
		   in_stock = EXCLUDED.in_stock
		 `

	var lastPrice sql.NullFloat64
	if item.LastPrice != nil {
		lastPrice = sql.NullFloat64{Float64: *item.LastPrice, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ProductURL, item.UserID, item.CreatedAt, item.UpdatedAt, lastPrice, item.InStock)
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, productURL string) error {
	query := `DELETE FROM tracked_items WHERE product_url = $1`

	if _, err := r.db.ExecContext(ctx, query, productURL); err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	query :=
		`SELECT product_url, user_id, created_at, updated_at, last_price, in_stock FROM tracked_items
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return result, nil
}
