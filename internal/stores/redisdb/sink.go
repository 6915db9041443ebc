package redisdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Sink appends a dataset to a list as JSON-encoded rows. The list key
// comes from cfg.Table.
type Sink struct{}

var _ driven.DataSink = (*Sink)(nil)

// NewSink creates a redis list sink.
func NewSink() *Sink {
	return &Sink{}
}

// Kind returns the store kind this sink handles.
func (s *Sink) Kind() domain.StoreKind {
	return domain.KindRedis
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Sink) ConfigKeys() []domain.ConfigKey {
	return configKeys()
}

// Save pushes every row onto the configured list under cfg.Policy.
func (s *Sink) Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error {
	key := cfg.Table
	if key == "" {
		return &domain.ConfigurationError{
			Field:  "output.table",
			Value:  "",
			Reason: "list key required for redis outputs",
		}
	}

	client, err := newClient(cfg.Location, &cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return &domain.ConnectionError{Target: cfg.Location, Err: err}
	}

	count, err := client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("checking key: %w", err)
	}

	if count > 0 && cfg.Policy == domain.PolicyFail {
		return &domain.TableConflictError{Table: key}
	}
	if cfg.Policy == domain.PolicyReplace {
		if err := client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("clearing key: %w", err)
		}
	}

	values := make([]any, 0, len(dataset.Rows))
	for _, row := range dataset.Rows {
		encoded, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
		values = append(values, string(encoded))
	}
	if len(values) == 0 {
		return nil
	}

	if err := client.RPush(ctx, key, values...).Err(); err != nil {
		return fmt.Errorf("pushing rows: %w", err)
	}
	return nil
}
