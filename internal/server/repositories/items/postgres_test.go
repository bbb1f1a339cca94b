package items

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var itemColumns = []string{"product_url", "user_id", "created_at", "updated_at", "last_price", "in_stock"}

func TestGet_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(itemColumns).
		AddRow("https://amazon.com/dp/X", "a@x.com", created, created, 19.99, false)
	mock.ExpectQuery(`(?s)^SELECT\s+product_url.*FROM\s+tracked_items\s+WHERE\s+product_url\s*=\s*\$1`).
		WithArgs("https://amazon.com/dp/X").
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "https://amazon.com/dp/X")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.UserID)
	require.NotNil(t, got.LastPrice)
	assert.InDelta(t, 19.99, *got.LastPrice, 1e-9)
	assert.False(t, got.InStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+tracked_items`).WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), "https://amazon.com/dp/none")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestPut(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+tracked_items.*ON\s+CONFLICT\s+\(product_url\)\s+DO\s+UPDATE`).
		WithArgs("https://amazon.com/dp/X", "a@x.com", now, now, sql.NullFloat64{}, true).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), &models.Item{
		ProductURL: "https://amazon.com/dp/X", UserID: "a@x.com",
		CreatedAt: now, UpdatedAt: now, InStock: true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+tracked_items\s+WHERE\s+product_url\s*=\s*\$1$`).
		WithArgs("https://amazon.com/dp/X").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, repo.Delete(context.Background(), "https://amazon.com/dp/X"))

	mock.ExpectExec(`^DELETE`).WillReturnError(errors.New("db down"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "https://amazon.com/dp/X"), common.ErrorStoreUnavailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	newer := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-24 * time.Hour)
	rows := sqlmock.NewRows(itemColumns).
		AddRow("https://amazon.com/dp/B", "a@x.com", newer, newer, nil, true).
		AddRow("https://amazon.com/dp/A", "a@x.com", older, older, 5.0, true)
	mock.ExpectQuery(`(?s)WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	got, err := repo.ListByUser(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://amazon.com/dp/B", got[0].ProductURL)
	assert.Nil(t, got[0].LastPrice)
	require.NotNil(t, got[1].LastPrice)
	assert.InDelta(t, 5.0, *got[1].LastPrice, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+tracked_items`).WithArgs("b@x.com").WillReturnRows(sqlmock.NewRows(itemColumns))

	got, err := repo.ListByUser(context.Background(), "b@x.com")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestListByUser_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+tracked_items`).WillReturnError(errors.New("timeout"))

	_, err := repo.ListByUser(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, common.ErrorStoreUnavailable)
}
