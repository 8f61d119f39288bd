package order

import (
	"context"
	"database/sql"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Repository interface {
	ResolveOpen(ctx context.Context, customerID uint) (*Order, error)
	Checkout(ctx context.Context, customerID uint, shipping address.ShippingInput, transactionID string) (*Order, error)
	ListByCustomer(ctx context.Context, customerID uint, completeOnly bool) ([]*Order, error)
	GetForCustomer(ctx context.Context, customerID, orderID uint) (*Order, error)
	DeleteOpen(ctx context.Context, customerID, orderID uint) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn}
}

// ResolveOpen returns the customer's single open order with its items,
// creating it if needed.
func (r *repository) ResolveOpen(ctx context.Context, customerID uint) (*Order, error) {
	var out *Order
	err := WithCustomerLock(ctx, r.db, customerID, func(q db.DBTX) error {
		o, err := LoadOpenWithItems(ctx, q, customerID)
		if err != nil {
			return err
		}
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Checkout records the shipping address and completes the customer's open
// order in one transaction. It never creates an order.
func (r *repository) Checkout(
	ctx context.Context,
	customerID uint,
	shipping address.ShippingInput,
	transactionID string,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Checkout"),
		zap.Uint("customer_id", customerID),
	)

	var out *Order
	err := WithCustomerLock(ctx, r.db, customerID, func(q db.DBTX) error {
		o, err := FindOpen(ctx, q, customerID, true)
		if err != nil {
			return err
		}
		if o == nil {
			log.Warn("checkout without open order")
			return ErrNoOpenOrder
		}

		cid, oid := customerID, o.ID
		addr, err := address.NewRepository(q).Create(ctx, &address.ShippingAddress{
			CustomerID: &cid,
			OrderID:    &oid,
			Address:    shipping.Address,
			City:       shipping.City,
			State:      shipping.State,
			Zipcode:    shipping.Zipcode,
		})
		if err != nil {
			return err
		}

		if _, err := q.ExecContext(ctx, `
			UPDATE orders
			SET complete = true, transaction_id = $2
			WHERE id = $1
		`, o.ID, transactionID); err != nil {
			log.Error("failed to complete order", zap.Uint("order_id", o.ID), zap.Error(err))
			return errors.Wrap(err, "complete order")
		}

		if err := attachItems(ctx, q, o); err != nil {
			return err
		}

		o.Complete = true
		o.TransactionID = &transactionID
		o.Shipping = addr
		out = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("order completed",
		zap.Uint("order_id", out.ID),
		zap.String("transaction_id", transactionID),
	)
	return out, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uint, completeOnly bool) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByCustomer"),
		zap.Uint("customer_id", customerID),
		zap.Bool("complete_only", completeOnly),
	)

	start := time.Now()

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1`
	if completeOnly {
		query += ` AND complete = true`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, errors.Wrap(err, "query orders")
	}
	defer rows.Close()

	orders := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, errors.Wrap(err, "scan order")
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, errors.Wrap(err, "iterate orders")
	}

	if err := r.hydrate(ctx, orders...); err != nil {
		return nil, err
	}

	log.Debug("list orders success",
		zap.Int("count", len(orders)),
		zap.Duration("duration", time.Since(start)),
	)
	return orders, nil
}

func (r *repository) GetForCustomer(ctx context.Context, customerID, orderID uint) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1 AND customer_id = $2
	`, orderID, customerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get order %d", orderID)
	}

	if err := r.hydrate(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteOpen discards an open order together with its items. Completed
// orders are history and are never deleted.
func (r *repository) DeleteOpen(ctx context.Context, customerID, orderID uint) error {
	return WithCustomerLock(ctx, r.db, customerID, func(q db.DBTX) error {
		var complete bool
		err := q.QueryRowContext(ctx, `
			SELECT complete
			FROM orders
			WHERE id = $1 AND customer_id = $2
			FOR UPDATE
		`, orderID, customerID).Scan(&complete)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		if err != nil {
			return errors.Wrapf(err, "lock order %d", orderID)
		}
		if complete {
			return ErrOrderCompleted
		}

		if _, err := q.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
			return errors.Wrap(err, "delete order items")
		}
		if _, err := q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, orderID); err != nil {
			return errors.Wrap(err, "delete order")
		}
		return nil
	})
}

// hydrate loads items and shipping addresses for already-scanned orders.
func (r *repository) hydrate(ctx context.Context, orders ...*Order) error {
	if len(orders) == 0 {
		return nil
	}
	if err := attachItems(ctx, r.db, orders...); err != nil {
		return err
	}

	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	shipping, err := address.NewRepository(r.db).GetByOrderIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Shipping = shipping[o.ID]
	}
	return nil
}
