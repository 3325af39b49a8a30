// Package orderlookup resolves a post-checkout identifier to an order
// projection for the confirmation view. The identifier is usually the opaque
// order token; a purely numeric one may also be the order id.
package orderlookup

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"

	"github.com/Ragul1106/pet-store/internal/backend"
	"github.com/Ragul1106/pet-store/internal/domain"
)

var (
	ErrMissingIdentifier = errors.New("no order identifier provided")
	ErrOrderNotFound     = errors.New("order not found")
)

var numericRe = regexp.MustCompile(`^\d+$`)

type API interface {
	OrderByToken(ctx context.Context, token string) (*domain.Order, error)
	OrderByID(ctx context.Context, id string) (*domain.Order, error)
}

type Service struct {
	api API
	log *zap.Logger
}

func NewService(api API, log *zap.Logger) *Service {
	return &Service{api: api, log: log}
}

// Resolve tries the token lookup first. Only a not-found answer (never a
// general failure) falls through to the id lookup, and only when the
// identifier is purely numeric. Nothing is retried.
func (s *Service) Resolve(ctx context.Context, identifier string) (*domain.Order, error) {
	if identifier == "" {
		return nil, ErrMissingIdentifier
	}

	order, err := s.api.OrderByToken(ctx, identifier)
	if err == nil {
		return order, nil
	}
	if !backend.IsNotFound(err) {
		return nil, err
	}

	if !numericRe.MatchString(identifier) {
		return nil, ErrOrderNotFound
	}

	s.log.Debug("token lookup missed, trying numeric id", zap.String("identifier", identifier))
	order, err = s.api.OrderByID(ctx, identifier)
	if err == nil {
		return order, nil
	}
	if backend.IsNotFound(err) {
		return nil, ErrOrderNotFound
	}
	return nil, err
}
