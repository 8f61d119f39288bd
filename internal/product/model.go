package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Slug        string          `json:"slug"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SeedInput is one catalog entry loaded by the seed command.
type SeedInput struct {
	Name        string  `yaml:"name"`
	Price       string  `yaml:"price"`
	Description *string `yaml:"description"`
	ImageURL    *string `yaml:"image_url"`
	Slug        string  `yaml:"slug"`
}
