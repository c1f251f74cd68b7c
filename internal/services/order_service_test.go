// internal/services/order_service_test.go
package services

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/letmemugyou/backend/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestOrderPlace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	order := &models.Order{
		CustomerName: "Jordan Tester",
		Email:        "jordan@example.com",
		Total:        54.10,
	}
	require.NoError(t, svc.Place(context.Background(), order))

	assert.True(t, strings.HasPrefix(order.OrderNumber, "LMM-"))
	assert.Len(t, order.OrderNumber, 12)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPlaceRetriesOnCollision(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_orders_order_number"})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	order := &models.Order{CustomerName: "Jordan Tester", Email: "jordan@example.com"}
	require.NoError(t, svc.Place(context.Background(), order))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPlaceGivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	for i := 0; i < maxOrderNumberAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "orders"`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()
	}

	order := &models.Order{CustomerName: "Jordan Tester", Email: "jordan@example.com"}
	err := svc.Place(context.Background(), order)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderPlaceNonCollisionErrorFailsFast(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(&pq.Error{Code: "53300", Message: "too many connections"})
	mock.ExpectRollback()

	order := &models.Order{CustomerName: "Jordan Tester", Email: "jordan@example.com"}
	err := svc.Place(context.Background(), order)

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderGetByNumber(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	orderID := uuid.New()
	mock.ExpectQuery(`SELECT .* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_number", "customer_name", "email", "total"}).
			AddRow(orderID.String(), "LMM-ABC12345", "Jordan Tester", "jordan@example.com", 54.10))
	mock.ExpectQuery(`SELECT .* FROM "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_name", "quantity"}).
			AddRow(uuid.New().String(), orderID.String(), "Classic Mug", 2))

	order, err := svc.GetByNumber(context.Background(), "LMM-ABC12345")
	require.NoError(t, err)

	assert.Equal(t, "LMM-ABC12345", order.OrderNumber)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic Mug", order.Items[0].ProductName)
}

func TestOrderGetByNumberNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewOrderService(db)

	mock.ExpectQuery(`SELECT .* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.GetByNumber(context.Background(), "LMM-MISSING1")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(assertableError("ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)")))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "53300"}))
	assert.False(t, isUniqueViolation(assertableError("connection refused")))
}

type assertableError string

func (e assertableError) Error() string { return string(e) }
