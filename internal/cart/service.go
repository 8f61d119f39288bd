package cart

import (
	"context"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/order"
	"storefront-be/internal/product"

	"go.uber.org/zap"
)

type Service interface {
	GetCart(ctx context.Context, caller auth.Caller) (*order.Order, error)
	UpdateItem(ctx context.Context, caller auth.Caller, input UpdateItemInput) (*MutationResult, error)
}

type service struct {
	repo     Repository
	orders   order.Repository
	products product.Repository
}

func NewService(repo Repository, orders order.Repository, products product.Repository) Service {
	return &service{repo: repo, orders: orders, products: products}
}

// GetCart returns the caller's open order, creating it on first view.
// Anonymous callers get an empty cart that is never stored.
func (s *service) GetCart(ctx context.Context, caller auth.Caller) (*order.Order, error) {
	if !caller.Authenticated() {
		return &order.Order{Items: []*order.OrderItem{}}, nil
	}
	return s.orders.ResolveOpen(ctx, caller.UserID)
}

func (s *service) UpdateItem(
	ctx context.Context,
	caller auth.Caller,
	input UpdateItemInput,
) (*MutationResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateItem"),
		zap.Uint("product_id", uint(input.ProductID)),
		zap.String("action", input.Action),
	)

	if !caller.Authenticated() {
		return nil, ErrUserNotAuthenticated
	}

	action, err := ParseAction(input.Action)
	if err != nil {
		metrics.CartMutations.WithLabelValues("unknown", "invalid").Inc()
		return nil, err
	}
	if input.ProductID == 0 {
		metrics.CartMutations.WithLabelValues(string(action), "invalid").Inc()
		return nil, ErrInvalidProductID
	}

	p, err := s.products.GetByID(ctx, uint(input.ProductID))
	if err != nil {
		log.Warn("product lookup failed", zap.Error(err))
		metrics.CartMutations.WithLabelValues(string(action), "not_found").Inc()
		return nil, err
	}

	res, err := s.repo.MutateItem(ctx, caller.UserID, p.ID, action)
	if err != nil {
		metrics.CartMutations.WithLabelValues(string(action), "failed").Inc()
		return nil, err
	}

	metrics.CartMutations.WithLabelValues(string(action), "ok").Inc()
	log.Info("cart item updated",
		zap.Uint("order_id", res.OrderID),
		zap.Int("quantity", res.Quantity),
		zap.Int("cart_items", res.CartItems),
	)
	return res, nil
}
