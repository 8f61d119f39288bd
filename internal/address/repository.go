package address

import (
	"context"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/cockroachdb/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, addr *ShippingAddress) (*ShippingAddress, error)
	GetByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint]*ShippingAddress, error)
}

type repository struct {
	db db.DBTX
}

// NewRepository accepts either the pool or an open transaction, so checkout can
// record the address in the same transaction that completes the order.
func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, addr *ShippingAddress) (*ShippingAddress, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateShippingAddress"),
	)

	out := *addr
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shipping_addresses (customer_id, order_id, address, city, state, zipcode)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		addr.CustomerID,
		addr.OrderID,
		addr.Address,
		addr.City,
		addr.State,
		addr.Zipcode,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		log.Error("insert failed", zap.Error(err))
		return nil, errors.Wrap(err, "insert shipping address")
	}

	log.Debug("shipping address created", zap.Uint("address_id", out.ID))
	return &out, nil
}

// GetByOrderIDs returns the shipping address recorded for each order that
// has one, keyed by order id.
func (r *repository) GetByOrderIDs(ctx context.Context, orderIDs []uint) (map[uint]*ShippingAddress, error) {
	res := make(map[uint]*ShippingAddress, len(orderIDs))
	if len(orderIDs) == 0 {
		return res, nil
	}

	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, order_id, address, city, state, zipcode, created_at
		FROM shipping_addresses
		WHERE order_id = ANY($1)
		ORDER BY created_at ASC, id ASC
	`, pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "query shipping addresses")
	}
	defer rows.Close()

	for rows.Next() {
		var a ShippingAddress
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.OrderID,
			&a.Address, &a.City, &a.State, &a.Zipcode,
			&a.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scan shipping address")
		}
		if a.OrderID != nil {
			res[*a.OrderID] = &a
		}
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate shipping addresses")
	}

	return res, nil
}
