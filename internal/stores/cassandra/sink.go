package cassandra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocql/gocql"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// Sink writes a dataset into a table under the configured write policy.
// Created tables carry a synthetic timeuuid partition key because the
// dataset model has no natural one.
type Sink struct{}

var _ driven.DataSink = (*Sink)(nil)

// NewSink creates a cassandra sink.
func NewSink() *Sink {
	return &Sink{}
}

// Kind returns the store kind this sink handles.
func (s *Sink) Kind() domain.StoreKind {
	return domain.KindCassandra
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Sink) ConfigKeys() []domain.ConfigKey {
	return configKeys()
}

// Save writes the dataset into cfg.Table.
func (s *Sink) Save(ctx context.Context, dataset *domain.Dataset, cfg domain.DestConfig) error {
	if cfg.Table == "" {
		return &domain.ConfigurationError{
			Field:  "output.table",
			Value:  "",
			Reason: "required for cassandra outputs",
		}
	}

	session, err := connect(cfg.Location, &cfg)
	if err != nil {
		return err
	}
	defer session.Close()

	exists, err := tableExists(ctx, session, cfg.Setting(settingKeyspace), cfg.Table)
	if err != nil {
		return err
	}

	// The conflict check happens before any write so a fail policy
	// leaves existing content untouched.
	if exists && cfg.Policy == domain.PolicyFail {
		return &domain.TableConflictError{Table: cfg.Table}
	}

	if exists && cfg.Policy == domain.PolicyReplace {
		if err := session.Query("TRUNCATE " + quoteIdent(cfg.Table)).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("truncating table: %w", err)
		}
	}

	if !exists {
		if err := session.Query(createStatement(dataset, cfg.Table)).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("creating table: %w", err)
		}
	}

	insert := insertStatement(dataset, cfg.Table)
	args := make([]any, len(dataset.Columns)+1)
	for _, row := range dataset.Rows {
		args[0] = gocql.TimeUUID()
		for i, col := range dataset.Columns {
			args[i+1] = bindValue(row[col])
		}
		if err := session.Query(insert, args...).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("inserting row: %w", err)
		}
	}

	return nil
}

// tableExists checks the schema catalogue for the table.
func tableExists(ctx context.Context, session *gocql.Session, keyspace, table string) (bool, error) {
	var name string
	err := session.Query(
		"SELECT table_name FROM system_schema.tables WHERE keyspace_name = ? AND table_name = ?",
		keyspace, table,
	).WithContext(ctx).Scan(&name)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking table: %w", err)
	}
	return true, nil
}

// createStatement builds a CREATE TABLE statement with column types
// inferred from the dataset values.
func createStatement(dataset *domain.Dataset, table string) string {
	defs := make([]string, 0, len(dataset.Columns)+1)
	defs = append(defs, "id timeuuid PRIMARY KEY")
	for _, col := range dataset.Columns {
		defs = append(defs, quoteIdent(col)+" "+cqlType(dataset, col))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(table), strings.Join(defs, ", "))
}

// insertStatement builds the row INSERT statement.
func insertStatement(dataset *domain.Dataset, table string) string {
	quoted := make([]string, 0, len(dataset.Columns)+1)
	quoted = append(quoted, "id")
	placeholders := make([]string, 0, len(dataset.Columns)+1)
	placeholders = append(placeholders, "?")
	for _, col := range dataset.Columns {
		quoted = append(quoted, quoteIdent(col))
		placeholders = append(placeholders, "?")
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}
