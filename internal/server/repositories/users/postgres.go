package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	query :=
		`SELECT user_id, email, is_subscribed, password_hash, last_login, created_at FROM users
		 WHERE user_id = $1
		 `

	var (
		user         models.User
		passwordHash sql.NullString
		lastLogin    sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&user.UserID, &user.Email, &user.IsSubscribed, &passwordHash, &lastLogin, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}

	user.PasswordHash = passwordHash.String
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return &user, nil
}

func (r *PostgresRepository) Put(ctx context.Context, user *models.User) error {
	query :=
		`INSERT INTO users (user_id, email, is_subscribed, password_hash, last_login, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   email = EXCLUDED.email,
		   is_subscribed = EXCLUDED.is_subscribed,
		   password_hash = EXCLUDED.password_hash,
		   last_login = EXCLUDED.last_login,
		   created_at = EXCLUDED.created_at
		 `

	passwordHash := sql.NullString{String: user.PasswordHash, Valid: user.PasswordHash != ""}
	var lastLogin sql.NullTime
	if user.LastLogin != nil {
		lastLogin = sql.NullTime{Time: *user.LastLogin, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		user.UserID, user.Email, user.IsSubscribed, passwordHash, lastLogin, user.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) MarkSubscribed(ctx context.Context, userID string) error {
	query :=
		`INSERT INTO users (user_id, email, is_subscribed)
		 VALUES ($1, $1, TRUE)
		 ON CONFLICT (user_id) DO UPDATE SET is_subscribed = TRUE
		 `

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *PostgresRepository) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login = $2 WHERE user_id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, at)
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: db error: %w", common.ErrorStoreUnavailable, err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
