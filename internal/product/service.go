package product

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"storefront-be/internal/logger"
	"storefront-be/internal/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Seed(ctx context.Context, inputs []SeedInput) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "List"),
	)

	start := time.Now()

	products, err := s.repo.List(ctx)
	if err != nil {
		log.Error("failed to fetch product list",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)),
		)
		return nil, err
	}

	log.Info("get product list success",
		zap.Int("count", len(products)),
		zap.Duration("duration", time.Since(start)),
	)
	return products, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}
	return s.repo.GetBySlug(ctx, slug)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Product, error) {
	if id == 0 {
		return nil, ErrProductNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Seed validates every entry before writing any of them, then upserts by slug.
func (s *service) Seed(ctx context.Context, inputs []SeedInput) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Seed"),
	)

	products := make([]*Product, 0, len(inputs))
	for _, in := range inputs {
		p, err := productFromSeed(in)
		if err != nil {
			log.Warn("invalid catalog entry", zap.String("name", in.Name), zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	saved := make([]*Product, 0, len(products))
	for _, p := range products {
		out, err := s.repo.Upsert(ctx, p)
		if err != nil {
			return nil, err
		}
		saved = append(saved, out)
	}

	log.Info("catalog seeded", zap.Int("count", len(saved)))
	return saved, nil
}

// matches products.name VARCHAR(200), which counts characters
const maxNameLength = 200

func productFromSeed(in SeedInput) (*Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrNameTooLong
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.Price))
	if err != nil || price.IsNegative() || !price.Equal(price.Round(2)) {
		return nil, ErrInvalidPrice
	}
	// NUMERIC(7,2)
	if price.GreaterThanOrEqual(decimal.NewFromInt(100000)) {
		return nil, ErrInvalidPrice
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = utils.Slugify(name)
	}
	if slug == "" {
		return nil, ErrInvalidSlug
	}

	return &Product{
		Name:        name,
		Price:       price.Round(2),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Slug:        slug,
	}, nil
}
