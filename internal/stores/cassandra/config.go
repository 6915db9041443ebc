package cassandra

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocql/gocql"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

const (
	settingKeyspace    = "keyspace"
	settingConsistency = "consistency"
	settingTable       = "table"
)

// connectTimeout bounds the initial cluster dial.
const connectTimeout = 10 * time.Second

// configKeys lists the options shared by the source and the sink.
func configKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         settingKeyspace,
			Label:       "Keyspace",
			Description: "Keyspace holding the table",
			Required:    true,
		},
		{
			Key:         settingConsistency,
			Label:       "Consistency",
			Description: "Consistency level for reads and writes",
			Default:     "quorum",
		},
	}
}

// settings is the configuration surface shared by both directions.
type settings interface {
	Setting(key string) string
}

// connect dials the cluster at location. The location is a
// comma-separated host list. Callers own the session and must close it.
func connect(location string, cfg settings) (*gocql.Session, error) {
	keyspace := cfg.Setting(settingKeyspace)
	if keyspace == "" {
		return nil, &domain.ConfigurationError{
			Field:  settingKeyspace,
			Value:  "",
			Reason: "required for cassandra stores",
		}
	}

	cluster := gocql.NewCluster(strings.Split(location, ",")...)
	cluster.Keyspace = keyspace
	cluster.ConnectTimeout = connectTimeout
	cluster.Consistency = gocql.Quorum
	if raw := cfg.Setting(settingConsistency); raw != "" {
		parsed, err := gocql.ParseConsistencyWrapper(raw)
		if err != nil {
			return nil, &domain.ConfigurationError{
				Field:  settingConsistency,
				Value:  raw,
				Reason: "unknown consistency level",
			}
		}
		cluster.Consistency = parsed
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, &domain.ConnectionError{Target: location, Err: err}
	}
	return session, nil
}

// quoteIdent quotes a table or column identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// cqlType picks a column type from the first non-nil value.
func cqlType(dataset *domain.Dataset, column string) string {
	for _, row := range dataset.Rows {
		switch row[column].(type) {
		case nil:
			continue
		case float64:
			return "double"
		case int, int64:
			return "bigint"
		case bool:
			return "boolean"
		default:
			return "text"
		}
	}
	return "text"
}

// bindValue maps a dataset value onto a driver-friendly parameter.
func bindValue(v any) any {
	switch v.(type) {
	case nil, string, int, int64, float64, bool, []byte, time.Time:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
