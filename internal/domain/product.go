package domain

import "github.com/shopspring/decimal"

// Product is the detail projection served by GET /pet-product/{id}/.
type Product struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Image           string          `json:"image"`
	Price           decimal.Decimal `json:"price"`
	QuantityDisplay string          `json:"quantity_display"`
	Description     string          `json:"description"`
	Rating          int             `json:"rating"`
	RatingCount     int             `json:"rating_count"`
}

// Snapshot shapes the product the way the checkout summary expects it, with
// the current price captured as the price snapshot.
func (p *Product) Snapshot() *ProductSnapshot {
	return &ProductSnapshot{
		ID:              p.ID,
		Title:           p.Title,
		Image:           p.Image,
		PriceSnapshot:   p.Price,
		QuantityDisplay: p.QuantityDisplay,
	}
}
