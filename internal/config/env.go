package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// loadSecrets reads the platform secret store, a dotenv formatted file.
// A missing file is not an error.
func loadSecrets(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	secrets, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading secrets file %s: %w", path, err)
	}
	return secrets, nil
}

type lookup struct {
	secrets map[string]string
}

func (l lookup) str(key, defaultValue string) string {
	if value, ok := l.secrets[key]; ok && value != "" {
		return value
	}
	return getEnv(key, defaultValue)
}

func (l lookup) int(key string, defaultValue int) int {
	if value := l.str(key, ""); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (l lookup) bool(key string, defaultValue bool) bool {
	if value := l.str(key, ""); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
