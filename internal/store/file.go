package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"social-media-agent/models"
)

const (
	ConfigFileName = "sma_config.json"
	RunLogFileName = "sma_last_run.json"
)

// FileStore keeps each record in its own JSON file.
type FileStore struct {
	configPath string
	logPath    string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileStore{
		configPath: filepath.Join(dir, ConfigFileName),
		logPath:    filepath.Join(dir, RunLogFileName),
	}, nil
}

func (s *FileStore) SaveConfig(ctx context.Context, email string, interests []string) (models.UserConfig, error) {
	cfg := newConfig(email, interests)
	if err := writeJSON(s.configPath, cfg); err != nil {
		return models.UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	return cfg, nil
}

func (s *FileStore) LoadConfig(ctx context.Context) (*models.UserConfig, error) {
	var cfg models.UserConfig
	found, err := readJSON(s.configPath, &cfg)
	if err != nil || !found {
		return nil, err
	}
	return &cfg, nil
}

func (s *FileStore) SaveRunLog(ctx context.Context, log models.RunLog) error {
	if err := writeJSON(s.logPath, log); err != nil {
		return fmt.Errorf("save run log: %w", err)
	}
	return nil
}

func (s *FileStore) LoadRunLog(ctx context.Context) (*models.RunLog, error) {
	var log models.RunLog
	found, err := readJSON(s.logPath, &log)
	if err != nil || !found {
		return nil, err
	}
	return &log, nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// writeJSON replaces path atomically through a temp file in the same dir.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
