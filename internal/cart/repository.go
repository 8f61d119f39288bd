package cart

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	MutateItem(ctx context.Context, customerID, productID uint, action Action) (*MutationResult, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn}
}

// MutateItem applies action to the (open order, product) line item under the
// customer's lock. A new item starts at zero and an item that drops to zero
// or below is deleted, so no non-positive quantity is ever stored.
func (r *repository) MutateItem(
	ctx context.Context,
	customerID, productID uint,
	action Action,
) (*MutationResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "MutateItem"),
		zap.Uint("customer_id", customerID),
		zap.Uint("product_id", productID),
		zap.String("action", string(action)),
	)

	res := &MutationResult{ProductID: productID}

	err := order.WithCustomerLock(ctx, r.db, customerID, func(q db.DBTX) error {
		o, _, err := order.FindOrCreateOpen(ctx, q, customerID)
		if err != nil {
			return err
		}
		res.OrderID = o.ID

		var (
			itemID  uint
			current int
			exists  = true
		)
		err = q.QueryRowContext(ctx, `
			SELECT id, quantity
			FROM order_items
			WHERE order_id = $1 AND product_id = $2
			FOR UPDATE
		`, o.ID, productID).Scan(&itemID, &current)
		if errors.Is(err, sql.ErrNoRows) {
			exists = false
			current = 0
		} else if err != nil {
			return errors.Wrap(err, "get order item")
		}

		next := action.Apply(current)

		switch {
		case next <= 0 && exists:
			if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE id = $1`, itemID); err != nil {
				return errors.Wrap(err, "delete order item")
			}
			next = 0
		case next <= 0:
			// fresh item that would start at or below zero is never written
			next = 0
		case exists:
			if _, err := q.ExecContext(ctx, `
				UPDATE order_items
				SET quantity = $2
				WHERE id = $1
			`, itemID, next); err != nil {
				return errors.Wrap(err, "update order item")
			}
		default:
			if _, err := q.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity)
				VALUES ($1, $2, $3)
			`, o.ID, productID, next); err != nil {
				// product deleted since the service looked it up
				var pqErr *pq.Error
				if errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation {
					return product.ErrProductNotFound
				}
				return errors.Wrap(err, "insert order item")
			}
		}
		res.Quantity = next

		count, err := countItems(ctx, q, o.ID)
		if err != nil {
			return err
		}
		res.CartItems = count
		return nil
	})
	if err != nil {
		log.Error("failed to mutate cart item", zap.Error(err))
		return nil, err
	}

	log.Debug("cart item mutated",
		zap.Uint("order_id", res.OrderID),
		zap.Int("quantity", res.Quantity),
		zap.Int("cart_items", res.CartItems),
	)
	return res, nil
}

// countItems sums quantities over items whose product still exists.
func countItems(ctx context.Context, q db.DBTX, orderID uint) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
	`, orderID).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "count cart items")
	}
	return count, nil
}
