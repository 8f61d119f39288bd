package user

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"storefront-be/internal/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const minPasswordLength = 8

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9@.+_-]{1,150}$`)

type Service interface {
	Register(ctx context.Context, creds Credentials) (string, *User, error)
	Login(ctx context.Context, creds Credentials) (string, *User, error)
}

type service struct {
	repo      Repository
	jwtSecret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, jwtSecret: jwtSecret}
}

func (s *service) Register(ctx context.Context, creds Credentials) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	username := strings.TrimSpace(creds.Username)
	if !usernamePattern.MatchString(username) {
		return "", nil, ErrInvalidUsername
	}
	if utf8.RuneCountInString(creds.Password) < minPasswordLength {
		return "", nil, ErrPasswordTooShort
	}

	hashed, err := HashPassword(creds.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, errors.Wrap(err, "hash password")
	}

	u, err := s.repo.Create(ctx, username, hashed)
	if err != nil {
		log.Warn("failed to create user", zap.String("username", username), zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(s.jwtSecret, u.ID, u.Username)
	if err != nil {
		log.Error("failed to generate jwt", zap.Uint("user_id", u.ID), zap.Error(err))
		return "", nil, err
	}

	log.Info("register service completed",
		zap.Uint("user_id", u.ID),
		zap.String("username", u.Username),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, creds Credentials) (string, *User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Login"),
	)

	username := strings.TrimSpace(creds.Username)

	u, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		log.Info("login for unknown username")
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !CheckPasswordHash(creds.Password, u.PasswordHash) {
		log.Info("password mismatch", zap.Uint("user_id", u.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(s.jwtSecret, u.ID, u.Username)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
