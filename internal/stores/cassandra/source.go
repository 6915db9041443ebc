package cassandra

import (
	"context"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Source loads a dataset from a table, either through an explicit CQL
// query or a full scan of the table named in the settings. The session
// lives for the duration of one Load call.
type Source struct{}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a cassandra source.
func NewSource() *Source {
	return &Source{}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindCassandra
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	keys := configKeys()
	return append(keys, domain.ConfigKey{
		Key:         settingTable,
		Label:       "Table",
		Description: "Table to scan when no query is given",
	})
}

// Load runs the read statement and maps the result set.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	stmt := cfg.Query
	if stmt == "" {
		if table := cfg.Setting(settingTable); table != "" {
			stmt = "SELECT * FROM " + quoteIdent(table)
		}
	}
	if stmt == "" {
		return nil, &domain.ConfigurationError{
			Field:  "source.query",
			Value:  "",
			Reason: "query or table setting required for cassandra sources",
		}
	}

	session, err := connect(cfg.Location, &cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	iter := session.Query(stmt).WithContext(ctx).Iter()

	info := iter.Columns()
	columns := make([]string, len(info))
	for i, col := range info {
		columns[i] = col.Name
	}

	dataset := domain.NewDataset(columns)
	for {
		values := make(map[string]interface{})
		if !iter.MapScan(values) {
			break
		}
		row := make(domain.Row, len(values))
		for k, v := range values {
			row[k] = v
		}
		dataset.Append(row)
	}
	if err := iter.Close(); err != nil {
		return nil, &domain.QueryError{Query: stmt, Err: err}
	}

	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}
