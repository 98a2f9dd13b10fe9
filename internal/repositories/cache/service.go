package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"payflow/internal/models"

	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// CacheService caches payment methods, the one read-mostly resource the
// pay-in flow re-reads on every call. A nil client degrades to a no-op.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{client: client, ttl: defaultTTL}
}

func (s *CacheService) key(id uint) string {
	return fmt.Sprintf("payment_method:id:%d", id)
}

// GetPaymentMethod returns a cached payment method or ErrCacheMiss.
func (s *CacheService) GetPaymentMethod(ctx context.Context, id uint) (*models.PaymentMethod, error) {
	if s.client == nil {
		return nil, ErrCacheMiss
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var method models.PaymentMethod
	if err := json.Unmarshal(data, &method); err != nil {
		return nil, fmt.Errorf("cache decode failed: %w", err)
	}
	return &method, nil
}

// SetPaymentMethod stores a payment method with the default TTL.
func (s *CacheService) SetPaymentMethod(ctx context.Context, method *models.PaymentMethod) error {
	if s.client == nil || method == nil {
		return nil
	}

	data, err := json.Marshal(method)
	if err != nil {
		return fmt.Errorf("cache encode failed: %w", err)
	}
	return s.client.Set(ctx, s.key(method.ID), data, s.ttl).Err()
}

// InvalidatePaymentMethod drops a payment method from the cache.
func (s *CacheService) InvalidatePaymentMethod(ctx context.Context, id uint) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, s.key(id)).Err()
}

// FlushAll clears the cache. Used on startup.
func (s *CacheService) FlushAll(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.FlushAll(ctx).Err()
}

// Close releases the Redis connection.
func (s *CacheService) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
