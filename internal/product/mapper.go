package product

import "time"

// Response is the wire shape of a catalog entry. Prices are rendered as
// fixed two-decimal strings.
type Response struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	Slug        string  `json:"slug"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(p *Product) *Response {
	if p == nil {
		return nil
	}
	return &Response{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Slug:        p.Slug,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToResponses(products []*Product) []*Response {
	out := make([]*Response, 0, len(products))
	for _, p := range products {
		out = append(out, ToResponse(p))
	}
	return out
}
