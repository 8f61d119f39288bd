package order

import "storefront-be/internal/apperr"

var (
	ErrOrderNotFound  = apperr.NotFound("order not found")
	ErrNoOpenOrder    = apperr.InvalidState("no open order to check out")
	ErrOrderCompleted = apperr.InvalidState("completed orders cannot be modified")
	ErrStateChange    = apperr.InvalidState("order state can only change through checkout")

	ErrUserNotAuthenticated = apperr.Unauthorized("user not logged in")
)
