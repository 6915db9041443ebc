package cassandra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

func typedDataset() *domain.Dataset {
	dataset := domain.NewDataset([]string{"text", "polarity", "count", "flag"})
	dataset.Append(domain.Row{"text": "good", "polarity": 0.84, "count": int64(3), "flag": true})
	return dataset
}

func TestCreateStatement(t *testing.T) {
	stmt := createStatement(typedDataset(), "scored")

	assert.Equal(t,
		`CREATE TABLE "scored" (id timeuuid PRIMARY KEY, "text" text, "polarity" double, "count" bigint, "flag" boolean)`,
		stmt)
}

func TestCreateStatement_NilColumnsFallBackToText(t *testing.T) {
	dataset := domain.NewDataset([]string{"note"})
	dataset.Append(domain.Row{"note": nil})

	stmt := createStatement(dataset, "scored")

	assert.Equal(t, `CREATE TABLE "scored" (id timeuuid PRIMARY KEY, "note" text)`, stmt)
}

func TestInsertStatement(t *testing.T) {
	stmt := insertStatement(typedDataset(), "scored")

	assert.Equal(t,
		`INSERT INTO "scored" (id, "text", "polarity", "count", "flag") VALUES (?, ?, ?, ?, ?)`,
		stmt)
}

func TestConnect_MissingKeyspace(t *testing.T) {
	cfg := domain.SourceConfig{Kind: domain.KindCassandra, Location: "127.0.0.1"}

	_, err := connect(cfg.Location, &cfg)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "keyspace", cfgErr.Field)
}

func TestConnect_BadConsistency(t *testing.T) {
	cfg := domain.SourceConfig{
		Kind:     domain.KindCassandra,
		Location: "127.0.0.1",
		Settings: map[string]string{"keyspace": "nlp", "consistency": "sometimes"},
	}

	_, err := connect(cfg.Location, &cfg)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "consistency", cfgErr.Field)
}
