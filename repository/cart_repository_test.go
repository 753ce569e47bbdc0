package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tksilicon/tshirtshop/models"
	"github.com/tksilicon/tshirtshop/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestAddItem_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "shopping_cart"`)).
		WillReturnRows(sqlmock.NewRows([]string{"item_id"}).AddRow(1))
	mock.ExpectCommit()

	item := &models.ShoppingCart{
		CartID:     "abc12345678",
		ProductID:  10,
		Attributes: "M, Red",
		Quantity:   1,
		BuyNow:     1,
	}
	err := repo.AddItem(context.Background(), item)
	assert.NoError(t, err)
	assert.Equal(t, 1, item.ItemID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveByCart_FiltersBuyNow(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"item_id", "cart_id", "product_id", "attributes", "quantity", "buy_now", "added_on"}).
		AddRow(1, "abc12345678", 10, "M, Red", 2, 1, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shopping_cart"`)).
		WithArgs("abc12345678", 1).
		WillReturnRows(rows)

	items, err := repo.FindActiveByCart(context.Background(), "abc12345678")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 10, items[0].ProductID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindItem_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shopping_cart"`)).
		WillReturnRows(sqlmock.NewRows([]string{}))

	item, err := repo.FindItem(context.Background(), 99)
	assert.Error(t, err)
	assert.Nil(t, item)
}

func TestDeleteByCart_ReportsRowsAffected(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shopping_cart"`)).
		WithArgs("abc12345678").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	affected, err := repo.DeleteByCart(context.Background(), "abc12345678")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCart_EmptyCart(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormCartRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shopping_cart"`)).
		WithArgs("nothere").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	affected, err := repo.DeleteByCart(context.Background(), "nothere")
	assert.NoError(t, err)
	assert.Zero(t, affected)
}
