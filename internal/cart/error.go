package cart

import "storefront-be/internal/apperr"

var (
	ErrUserNotAuthenticated = apperr.Unauthorized("user not logged in")

	ErrInvalidAction    = apperr.Validation("action must be add or remove")
	ErrInvalidProductID = apperr.Validation("productId must be a positive integer")

	// postgres
	pgForeignKeyViolation = "23503"
)
