package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/db"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderCols = []string{"id", "customer_id", "created_at", "complete", "transaction_id"}
	itemCols  = []string{
		"id", "order_id", "quantity", "created_at",
		"p.id", "p.name", "p.price", "p.description", "p.image_url", "p.slug", "p.created_at",
	}
)

const (
	lockSQL     = `SELECT pg_advisory_xact_lock\(\$1\)`
	openSQL     = `SELECT (.+) FROM orders WHERE customer_id = \$1 AND complete = false FOR UPDATE`
	itemsSQL    = `FROM order_items oi LEFT JOIN products p ON p.id = oi.product_id WHERE oi.order_id = ANY\(\$1\)`
	insertOrder = `INSERT INTO orders \(customer_id, complete\)`
)

func TestWithCustomerLock(t *testing.T) {
	t.Run("Commits on success", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectBegin()
		mock.ExpectExec(lockSQL).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		called := false
		err = WithCustomerLock(context.Background(), conn, 7, func(q db.DBTX) error {
			called = true
			return nil
		})
		assert.NoError(t, err)
		assert.True(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back when fn fails", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectBegin()
		mock.ExpectExec(lockSQL).WithArgs(7).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		boom := errors.New("boom")
		err = WithCustomerLock(context.Background(), conn, 7, func(q db.DBTX) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lock failure", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectBegin()
		mock.ExpectExec(lockSQL).WillReturnError(errors.New("lock timeout"))
		mock.ExpectRollback()

		err = WithCustomerLock(context.Background(), conn, 7, func(q db.DBTX) error {
			t.Fatal("fn must not run without the lock")
			return nil
		})
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Begin failure", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

		err = WithCustomerLock(context.Background(), conn, 7, func(q db.DBTX) error { return nil })
		assert.Error(t, err)
	})
}

func TestFindOrCreateOpen(t *testing.T) {
	now := time.Now()

	t.Run("Existing open order", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectQuery(openSQL).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(10, 1, now, false, nil))

		o, created, err := FindOrCreateOpen(context.Background(), conn, 1)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(10), o.ID)
		assert.Equal(t, StateOpen, o.State())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Creates when missing", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectQuery(openSQL).WithArgs(1).WillReturnRows(sqlmock.NewRows(orderCols))
		mock.ExpectQuery(insertOrder).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(11, 1, now, false, nil))

		o, created, err := FindOrCreateOpen(context.Background(), conn, 1)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, uint(11), o.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert conflict reads the winner", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectQuery(openSQL).WithArgs(1).WillReturnRows(sqlmock.NewRows(orderCols))
		mock.ExpectQuery(insertOrder).WithArgs(1).WillReturnRows(sqlmock.NewRows(orderCols))
		mock.ExpectQuery(openSQL).WithArgs(1).
			WillReturnRows(sqlmock.NewRows(orderCols).AddRow(12, 1, now, false, nil))

		o, created, err := FindOrCreateOpen(context.Background(), conn, 1)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, uint(12), o.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Query error", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		mock.ExpectQuery(openSQL).WillReturnError(errors.New("db error"))

		_, _, err = FindOrCreateOpen(context.Background(), conn, 1)
		assert.Error(t, err)
	})
}

func TestLoadItems(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Now()

	t.Run("No ids", func(t *testing.T) {
		res, err := LoadItems(context.Background(), conn, nil)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("Groups by order and keeps deleted products as nil", func(t *testing.T) {
		mock.ExpectQuery(itemsSQL).WithArgs(sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(itemCols).
				AddRow(1, 10, 2, now, 5, "Tea", "9.99", "green", nil, "tea", now).
				AddRow(2, 10, 1, now, nil, nil, nil, nil, nil, nil, nil).
				AddRow(3, 11, 4, now, 6, "Cup", "3.00", nil, "cup.png", "cup", now))

		res, err := LoadItems(context.Background(), conn, []uint{10, 11})
		require.NoError(t, err)

		require.Len(t, res[10], 2)
		require.Len(t, res[11], 1)

		tea := res[10][0]
		require.NotNil(t, tea.Product)
		assert.Equal(t, "Tea", tea.Product.Name)
		assert.Equal(t, "green", *tea.Product.Description)
		assert.Nil(t, tea.Product.ImageURL)
		assert.Equal(t, "19.98", tea.LineTotal().StringFixed(2))

		assert.Nil(t, res[10][1].Product)
		assert.Equal(t, "cup.png", *res[11][0].Product.ImageURL)
	})

	t.Run("Query error", func(t *testing.T) {
		mock.ExpectQuery(itemsSQL).WillReturnError(errors.New("db error"))

		_, err := LoadItems(context.Background(), conn, []uint{1})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
