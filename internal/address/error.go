package address

import "storefront-be/internal/apperr"

var (
	ErrShippingFieldRequired = apperr.Validation("shipping field is required")
	ErrShippingFieldTooLong  = apperr.Validation("shipping field is too long")
	ErrShippingFieldInvalid  = apperr.Validation("shipping field contains invalid characters")
)
