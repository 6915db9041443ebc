package redisdb

import (
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

const (
	settingPassword = "password"
	settingDB       = "db"
)

// configKeys lists the options shared by the source and the sink.
func configKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         settingPassword,
			Label:       "Password",
			Description: "Server password, empty for unauthenticated servers",
			Secret:      true,
		},
		{
			Key:         settingDB,
			Label:       "Database",
			Description: "Logical database index",
			Default:     "0",
		},
	}
}

// settings is the configuration surface shared by both directions.
type settings interface {
	Setting(key string) string
}

// newClient builds a client for the server at location. Callers own the
// client and must close it.
func newClient(location string, cfg settings) (*redis.Client, error) {
	db := 0
	if raw := cfg.Setting(settingDB); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &domain.ConfigurationError{
				Field:  settingDB,
				Value:  raw,
				Reason: "must be an integer",
			}
		}
		db = parsed
	}

	return redis.NewClient(&redis.Options{
		Addr:     location,
		Password: cfg.Setting(settingPassword),
		DB:       db,
	}), nil
}
