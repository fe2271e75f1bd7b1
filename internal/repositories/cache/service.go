package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tixpay/internal/settlement"

	"github.com/redis/go-redis/v9"
)

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Fee schedule caching. Published versions never change, so entries only expire by TTL.
func (s *CacheService) CacheFeeSchedule(ctx context.Context, cfg settlement.ScheduleConfig) error {
	return s.Set(ctx, s.GenerateKey("feeschedule", "version", cfg.Version), cfg)
}

func (s *CacheService) GetFeeSchedule(ctx context.Context, version string) (*settlement.ScheduleConfig, error) {
	var cfg settlement.ScheduleConfig
	found, err := s.Get(ctx, s.GenerateKey("feeschedule", "version", version), &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}
