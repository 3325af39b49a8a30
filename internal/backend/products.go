package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// ProductDetail fetches the display projection of one product. Inactive or
// unknown products come back as ErrNotFound.
func (c *Client) ProductDetail(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/pet-product/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &product); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &product, nil
}
