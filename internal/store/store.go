// Package store persists the single user config and the last run log.
// Every write replaces the previous record wholesale.
package store

import (
	"context"
	"fmt"

	"social-media-agent/internal/config"
	"social-media-agent/models"
)

type Store interface {
	// SaveConfig overwrites the saved config without validating it.
	SaveConfig(ctx context.Context, email string, interests []string) (models.UserConfig, error)
	// LoadConfig returns nil when nothing was saved yet.
	LoadConfig(ctx context.Context) (*models.UserConfig, error)
	SaveRunLog(ctx context.Context, log models.RunLog) error
	// LoadRunLog returns nil when no job has finished yet.
	LoadRunLog(ctx context.Context) (*models.RunLog, error)
	Close(ctx context.Context) error
}

// New opens the backend selected by cfg.StoreBackend.
func New(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreFile, "":
		fs, err := NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case config.StoreMongo:
		client, err := config.ConnectMongoDB(cfg)
		if err != nil {
			return nil, err
		}
		return NewMongoStore(client, cfg.DBName), nil
	case config.StoreRedis:
		rdb, err := config.NewRedisClient(cfg)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newConfig(email string, interests []string) models.UserConfig {
	out := make([]string, len(interests))
	copy(out, interests)
	return models.UserConfig{Email: email, Interests: out}
}
