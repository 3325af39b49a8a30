// Package product resolves product detail projections, mainly to hydrate
// buy-now snapshots at checkout. Reads go through a cache; concurrent lookups
// of the same id collapse to one origin fetch.
package product

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Ragul1106/pet-store/internal/domain"
)

type API interface {
	ProductDetail(ctx context.Context, id int64) (*domain.Product, error)
}

type Service struct {
	api   API
	cache Cache
	log   *zap.Logger
	sfg   singleflight.Group // prevents cache stampede
}

func NewService(api API, cache Cache, log *zap.Logger) *Service {
	return &Service{
		api:   api,
		cache: cache,
		log:   log,
	}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("product cache get failed", zap.Int64("product_id", id), zap.Error(err))
		}

		product, err = s.api.ProductDetail(ctx, id)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), id, product); err != nil {
				s.log.Warn("product cache set failed", zap.Int64("product_id", id), zap.Error(err))
			}
		}()

		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// Snapshot returns the checkout-facing shape of a product.
func (s *Service) Snapshot(ctx context.Context, id int64) (*domain.ProductSnapshot, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return product.Snapshot(), nil
}
