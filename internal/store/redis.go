package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"social-media-agent/models"
)

const (
	configKey = "sma:config"
	runLogKey = "sma:last_run"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) SaveConfig(ctx context.Context, email string, interests []string) (models.UserConfig, error) {
	cfg := newConfig(email, interests)
	if err := s.set(ctx, configKey, cfg); err != nil {
		return models.UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	return cfg, nil
}

func (s *RedisStore) LoadConfig(ctx context.Context) (*models.UserConfig, error) {
	var cfg models.UserConfig
	found, err := s.get(ctx, configKey, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (s *RedisStore) SaveRunLog(ctx context.Context, log models.RunLog) error {
	if err := s.set(ctx, runLogKey, log); err != nil {
		return fmt.Errorf("save run log: %w", err)
	}
	return nil
}

func (s *RedisStore) LoadRunLog(ctx context.Context) (*models.RunLog, error) {
	var log models.RunLog
	found, err := s.get(ctx, runLogKey, &log)
	if err != nil || !found {
		return nil, err
	}
	return &log, nil
}

func (s *RedisStore) Close(ctx context.Context) error {
	return s.rdb.Close()
}

func (s *RedisStore) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, data, 0).Err()
}

func (s *RedisStore) get(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}
