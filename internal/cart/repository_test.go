package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-be/internal/apperr"
	"storefront-be/internal/product"
)

const (
	lockSQL   = `SELECT pg_advisory_xact_lock\(\$1\)`
	openSQL   = `SELECT (.+) FROM orders WHERE customer_id = \$1 AND complete = false FOR UPDATE`
	itemSQL   = `SELECT id, quantity FROM order_items WHERE order_id = \$1 AND product_id = \$2 FOR UPDATE`
	countSQL  = `SELECT COALESCE\(SUM\(oi.quantity\), 0\) FROM order_items oi JOIN products p`
	insertSQL = `INSERT INTO order_items \(order_id, product_id, quantity\)`
	updateSQL = `UPDATE order_items SET quantity = \$2 WHERE id = \$1`
	deleteSQL = `DELETE FROM order_items WHERE id = \$1`
)

var orderCols = []string{"id", "customer_id", "created_at", "complete", "transaction_id"}

func expectOpenOrder(mock sqlmock.Sqlmock, customerID, orderID int) {
	mock.ExpectBegin()
	mock.ExpectExec(lockSQL).WithArgs(customerID).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(openSQL).WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows(orderCols).AddRow(orderID, customerID, time.Now(), false, nil))
}

func TestRepository_MutateItem(t *testing.T) {
	t.Run("Increment fresh item inserts quantity 1", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}))
		mock.ExpectExec(insertSQL).WithArgs(10, 5, 1).WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectQuery(countSQL).WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(1))
		mock.ExpectCommit()

		res, err := NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionIncrement)
		require.NoError(t, err)
		assert.Equal(t, &MutationResult{OrderID: 10, ProductID: 5, Quantity: 1, CartItems: 1}, res)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Increment existing item updates", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(3, 1))
		mock.ExpectExec(updateSQL).WithArgs(3, 2).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(countSQL).WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(2))
		mock.ExpectCommit()

		res, err := NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionIncrement)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Quantity)
		assert.Equal(t, 2, res.CartItems)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Decrement to zero deletes", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).
			WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}).AddRow(3, 1))
		mock.ExpectExec(deleteSQL).WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(countSQL).WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
		mock.ExpectCommit()

		res, err := NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionDecrement)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Quantity)
		assert.Equal(t, 0, res.CartItems)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Decrement absent item writes nothing", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}))
		mock.ExpectQuery(countSQL).WithArgs(10).WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(4))
		mock.ExpectCommit()

		res, err := NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionDecrement)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Quantity)
		assert.Equal(t, 4, res.CartItems)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Write failure rolls back", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}))
		mock.ExpectExec(insertSQL).WillReturnError(errors.New("db error"))
		mock.ExpectRollback()

		_, err = NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionIncrement)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Product deleted before insert", func(t *testing.T) {
		conn, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer conn.Close()

		expectOpenOrder(mock, 1, 10)
		mock.ExpectQuery(itemSQL).WithArgs(10, 5).WillReturnRows(sqlmock.NewRows([]string{"id", "quantity"}))
		mock.ExpectExec(insertSQL).WithArgs(10, 5, 1).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "order_items_product_id_fkey"})
		mock.ExpectRollback()

		_, err = NewRepository(conn).MutateItem(context.Background(), 1, 5, ActionIncrement)
		assert.ErrorIs(t, err, product.ErrProductNotFound)
		assert.Equal(t, 404, apperr.HTTPStatus(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
