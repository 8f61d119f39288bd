package product

import (
	"context"
	"database/sql"

	"storefront-be/internal/db"
	"storefront-be/internal/logger"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Product, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id uint) (*Product, error)
	Upsert(ctx context.Context, p *Product) (*Product, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

const productColumns = `id, name, price, description, image_url, slug, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var p Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Description,
		&p.ImageURL,
		&p.Slug,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY name ASC, id ASC
	`)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, errors.Wrap(err, "query products")
	}
	defer rows.Close()

	products := make([]*Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, errors.Wrap(err, "scan product")
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, errors.Wrap(err, "iterate products")
	}

	log.Debug("list products success", zap.Int("count", len(products)))
	return products, nil
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE slug = $1
	`, slug)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product by slug %q", slug)
	}
	return p, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "get product %d", id)
	}
	return p, nil
}

// Upsert inserts a product or, when the slug already exists, overwrites its
// catalog fields.
func (r *repository) Upsert(ctx context.Context, p *Product) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Upsert"),
		zap.String("slug", p.Slug),
	)

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO products (name, price, description, image_url, slug)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    description = EXCLUDED.description,
		    image_url = EXCLUDED.image_url
		RETURNING `+productColumns,
		p.Name,
		p.Price,
		p.Description,
		p.ImageURL,
		p.Slug,
	)

	saved, err := scanProduct(row)
	if err != nil {
		log.Error("failed to upsert product", zap.Error(err))
		return nil, errors.Wrapf(err, "upsert product %q", p.Slug)
	}

	log.Debug("product upserted", zap.Uint("product_id", saved.ID))
	return saved, nil
}
