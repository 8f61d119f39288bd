package order

import (
	"context"
	"time"

	"storefront-be/internal/address"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/metrics"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

// UpdateInput is the body accepted by the order update endpoint. The only
// field is the completion flag, which cannot be changed directly.
type UpdateInput struct {
	Complete *bool `json:"complete"`
}

type Service interface {
	Checkout(ctx context.Context, caller auth.Caller, shipping address.ShippingInput) (*CheckoutResult, error)
	History(ctx context.Context, caller auth.Caller) ([]*Order, error)
	List(ctx context.Context, caller auth.Caller) ([]*Order, error)
	Get(ctx context.Context, caller auth.Caller, orderID uint) (*Order, error)
	Create(ctx context.Context, caller auth.Caller) (*Order, error)
	Update(ctx context.Context, caller auth.Caller, orderID uint, input UpdateInput) (*Order, error)
	Delete(ctx context.Context, caller auth.Caller, orderID uint) error
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Checkout(
	ctx context.Context,
	caller auth.Caller,
	shipping address.ShippingInput,
) (*CheckoutResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
	)

	if !caller.Authenticated() {
		metrics.Checkouts.WithLabelValues("unauthorized").Inc()
		return nil, ErrUserNotAuthenticated
	}

	normalized, err := shipping.Normalize()
	if err != nil {
		log.Warn("invalid shipping payload", zap.Error(err))
		metrics.Checkouts.WithLabelValues("invalid").Inc()
		return nil, err
	}

	txID := utils.GenerateTransactionID(s.now())

	o, err := s.repo.Checkout(ctx, caller.UserID, normalized, txID)
	if err != nil {
		metrics.Checkouts.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.Checkouts.WithLabelValues("completed").Inc()
	log.Info("checkout success",
		zap.Uint("order_id", o.ID),
		zap.String("transaction_id", txID),
		zap.Int("item_count", o.ItemCount()),
		zap.String("total", o.Total().StringFixed(2)),
	)

	return &CheckoutResult{Order: o, TransactionID: txID}, nil
}

// History lists completed orders, newest first.
func (s *service) History(ctx context.Context, caller auth.Caller) ([]*Order, error) {
	if !caller.Authenticated() {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ListByCustomer(ctx, caller.UserID, true)
}

func (s *service) List(ctx context.Context, caller auth.Caller) ([]*Order, error) {
	if !caller.Authenticated() {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ListByCustomer(ctx, caller.UserID, false)
}

func (s *service) Get(ctx context.Context, caller auth.Caller, orderID uint) (*Order, error) {
	if !caller.Authenticated() {
		return nil, ErrUserNotAuthenticated
	}
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetForCustomer(ctx, caller.UserID, orderID)
}

// Create returns the caller's open order. Calling it twice yields the same
// order; a customer never has two carts.
func (s *service) Create(ctx context.Context, caller auth.Caller) (*Order, error) {
	if !caller.Authenticated() {
		return nil, ErrUserNotAuthenticated
	}
	return s.repo.ResolveOpen(ctx, caller.UserID)
}

func (s *service) Update(ctx context.Context, caller auth.Caller, orderID uint, input UpdateInput) (*Order, error) {
	o, err := s.Get(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}

	if input.Complete != nil && *input.Complete != o.Complete {
		logger.FromCtx(ctx).Warn("rejected direct order state change",
			zap.Uint("order_id", o.ID),
			zap.String("state", string(o.State())),
		)
		return nil, ErrStateChange
	}
	return o, nil
}

func (s *service) Delete(ctx context.Context, caller auth.Caller, orderID uint) error {
	if !caller.Authenticated() {
		return ErrUserNotAuthenticated
	}
	if orderID == 0 {
		return ErrOrderNotFound
	}
	return s.repo.DeleteOpen(ctx, caller.UserID, orderID)
}
