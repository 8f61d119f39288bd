package user

import (
	"storefront-be/internal/apperr"

	"github.com/cockroachdb/errors"
)

var (
	ErrUsernameTaken    = apperr.Validation("a user with that username already exists")
	ErrInvalidUsername  = apperr.Validation("username must be 1-150 characters of letters, digits and @.+-_")
	ErrPasswordTooShort = apperr.Validation("password must be at least 8 characters")

	ErrInvalidCredentials = apperr.Unauthorized("invalid username or password")
	ErrInvalidToken       = apperr.Unauthorized("invalid token")

	ErrUserNotFound     = errors.New("user not found")
	ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

	// postgres
	pgUniqueViolation = "23505"
)
