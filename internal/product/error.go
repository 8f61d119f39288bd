package product

import "storefront-be/internal/apperr"

var (
	ErrProductNotFound = apperr.NotFound("product not found")

	ErrInvalidName  = apperr.Validation("product name is required")
	ErrNameTooLong  = apperr.Validation("product name must be at most 200 characters")
	ErrInvalidPrice = apperr.Validation("product price must be a non-negative amount with at most 2 decimals")
	ErrInvalidSlug  = apperr.Validation("product slug could not be derived")
)
