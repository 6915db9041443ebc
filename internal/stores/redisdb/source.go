package redisdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Source reads a dataset from a list whose items are JSON-encoded rows.
// The list key comes from cfg.Query.
type Source struct{}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a redis list source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindRedis
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return configKeys()
}

// Load reads every item of the configured list.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	key := cfg.Query
	if key == "" {
		return nil, &domain.ConfigurationError{
			Field:  "source.query",
			Value:  "",
			Reason: "list key required for redis sources",
		}
	}

	client, err := newClient(cfg.Location, &cfg)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, &domain.ConnectionError{Target: cfg.Location, Err: err}
	}

	count, err := client.Exists(ctx, key).Result()
	if err != nil {
		return nil, &domain.QueryError{Query: key, Err: err}
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrSourceNotFound)
	}

	items, err := client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, &domain.QueryError{Query: key, Err: err}
	}

	columns, rows, err := decodeRows(items)
	if err != nil {
		return nil, &domain.SourceFormatError{Location: cfg.Location + "/" + key, Err: err}
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%s: %w", key, domain.ErrEmptyDataset)
	}

	dataset := &domain.Dataset{Columns: columns, Rows: rows}
	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}

// decodeRows parses one JSON object per list item. Columns are the
// sorted union of keys so the order is stable regardless of item order.
func decodeRows(items []string) ([]string, []domain.Row, error) {
	rows := make([]domain.Row, 0, len(items))
	seen := make(map[string]bool)

	for i, item := range items {
		row := make(domain.Row)
		if err := json.Unmarshal([]byte(item), &row); err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", i, err)
		}
		for k := range row {
			seen[k] = true
		}
		rows = append(rows, row)
	}

	columns := make([]string, 0, len(seen))
	for k := range seen {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	return columns, rows, nil
}
