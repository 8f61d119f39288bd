package order

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/product"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Building blocks shared by the order and cart repositories. All of them run
// against whatever DBTX they are given; the mutating ones expect to be called
// inside WithCustomerLock.

const orderColumns = `id, customer_id, created_at, complete, transaction_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	if err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.CreatedAt,
		&o.Complete,
		&o.TransactionID,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

// WithCustomerLock runs fn in a transaction that first takes the customer's
// advisory lock, so writers for the same customer are serialized until commit.
func WithCustomerLock(ctx context.Context, conn *sql.DB, customerID uint, fn func(q db.DBTX) error) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.Uint("customer_id", customerID),
	)

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return errors.Wrap(err, "begin transaction")
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("failed to rollback transaction", zap.Error(rbErr))
		}
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, customerID); err != nil {
		log.Error("failed to take customer lock", zap.Error(err))
		return errors.Wrap(err, "lock customer")
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", zap.Error(err))
		return errors.Wrap(err, "commit transaction")
	}
	committed = true
	return nil
}

// FindOpen returns the customer's open order, or nil when there is none.
func FindOpen(ctx context.Context, q db.DBTX, customerID uint, forUpdate bool) (*Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1 AND complete = false`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	o, err := scanOrder(q.QueryRowContext(ctx, query, customerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find open order")
	}
	return o, nil
}

// FindOrCreateOpen returns the customer's open order, inserting an empty one
// when none exists. Items are not loaded.
func FindOrCreateOpen(ctx context.Context, q db.DBTX, customerID uint) (*Order, bool, error) {
	o, err := FindOpen(ctx, q, customerID, true)
	if err != nil {
		return nil, false, err
	}
	if o != nil {
		return o, false, nil
	}

	// the partial unique index on open orders backs up the customer lock
	o, err = scanOrder(q.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, complete)
		VALUES ($1, false)
		ON CONFLICT (customer_id) WHERE complete = false DO NOTHING
		RETURNING `+orderColumns,
		customerID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		o, err = FindOpen(ctx, q, customerID, true)
		if err == nil && o == nil {
			err = errors.New("open order vanished after insert conflict")
		}
		return o, false, err
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "create open order")
	}

	logger.FromCtx(ctx).Debug("open order created",
		zap.Uint("customer_id", customerID),
		zap.Uint("order_id", o.ID),
	)
	return o, true, nil
}

// LoadItems fetches the items of the given orders, joined to their products,
// keyed by order id. An item whose product was deleted has a nil Product.
func LoadItems(ctx context.Context, q db.DBTX, orderIDs []uint) (map[uint][]*OrderItem, error) {
	res := make(map[uint][]*OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return res, nil
	}

	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, int64(id))
	}

	rows, err := q.QueryContext(ctx, `
		SELECT
			oi.id, oi.order_id, oi.quantity, oi.created_at,
			p.id, p.name, p.price, p.description, p.image_url, p.slug, p.created_at
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.created_at ASC, oi.id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "query order items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it          OrderItem
			productID   sql.NullInt64
			name        sql.NullString
			price       decimal.NullDecimal
			description sql.NullString
			imageURL    sql.NullString
			slug        sql.NullString
			createdAt   sql.NullTime
		)
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.Quantity, &it.CreatedAt,
			&productID, &name, &price, &description, &imageURL, &slug, &createdAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan order item")
		}

		if productID.Valid {
			p := &product.Product{
				ID:        uint(productID.Int64),
				Name:      name.String,
				Price:     price.Decimal,
				Slug:      slug.String,
				CreatedAt: createdAt.Time,
			}
			if description.Valid {
				p.Description = &description.String
			}
			if imageURL.Valid {
				p.ImageURL = &imageURL.String
			}
			it.Product = p
		}

		if it.OrderID != nil {
			res[*it.OrderID] = append(res[*it.OrderID], &it)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate order items")
	}

	return res, nil
}

func attachItems(ctx context.Context, q db.DBTX, orders ...*Order) error {
	ids := make([]uint, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}

	items, err := LoadItems(ctx, q, ids)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Items = items[o.ID]
		if o.Items == nil {
			o.Items = []*OrderItem{}
		}
	}
	return nil
}

// LoadOpenWithItems is FindOrCreateOpen followed by loading the order's items.
func LoadOpenWithItems(ctx context.Context, q db.DBTX, customerID uint) (*Order, error) {
	o, _, err := FindOrCreateOpen(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	if err := attachItems(ctx, q, o); err != nil {
		return nil, err
	}
	return o, nil
}
