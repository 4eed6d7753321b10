package cart

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/pkg/cache"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
)

type (
	CartService interface {
		GetCart(ctx context.Context, userID string, date string) (*domain.CartResponse, error)
		SaveCart(ctx context.Context, userID string, req domain.SaveCartRequest) (*domain.CartResponse, error)
		ClearCart(ctx context.Context, userID string, date string) error
	}

	cartService struct {
		cache cache.Cache
	}
)

func NewCartService(c cache.Cache) CartService {
	return &cartService{cache: c}
}

func (s *cartService) load(ctx context.Context, userID, date string) (*Cart, error) {
	raw, err := s.cache.Get(ctx, cache.CartKey(userID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return New(date), nil
		}
		return nil, domain.ErrCartUnavailable
	}

	c, err := Decode(raw, date)
	if err != nil {
		log.Warnf("discarding unreadable cart for user %s: %v", userID, err)
		return New(date), nil
	}
	return c, nil
}

func (s *cartService) GetCart(ctx context.Context, userID string, date string) (*domain.CartResponse, error) {
	c, err := s.load(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	return &domain.CartResponse{Date: c.Date, Items: c.Lines()}, nil
}

func (s *cartService) SaveCart(ctx context.Context, userID string, req domain.SaveCartRequest) (*domain.CartResponse, error) {
	for _, l := range req.Items {
		if l.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	c := FromLines(req.Date, req.Items)
	encoded, err := c.Encode()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, cache.CartKey(userID), encoded, cache.TTLCart); err != nil {
		return nil, domain.ErrCartUnavailable
	}
	return &domain.CartResponse{Date: c.Date, Items: c.Lines()}, nil
}

// ClearCart drops the stored cart only when it belongs to date, so checking
// out for one day leaves a cart being built for another day untouched.
func (s *cartService) ClearCart(ctx context.Context, userID string, date string) error {
	raw, err := s.cache.Get(ctx, cache.CartKey(userID))
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil
		}
		return domain.ErrCartUnavailable
	}

	if stored, err := StoredDate(raw); err == nil && stored != date {
		return nil
	}
	return s.cache.Delete(ctx, cache.CartKey(userID))
}
