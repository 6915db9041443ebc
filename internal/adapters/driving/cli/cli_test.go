package cli

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/OhhJay/nlp-pipeline/internal/adapters/driven/config/file"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/services"
	"github.com/OhhJay/nlp-pipeline/internal/logger"
	"github.com/OhhJay/nlp-pipeline/internal/sentiment"
	"github.com/OhhJay/nlp-pipeline/internal/stores/csvfile"
	"github.com/OhhJay/nlp-pipeline/internal/stores/jsonfile"
	"github.com/OhhJay/nlp-pipeline/internal/stores/sqldb"
)

// setupTestServices wires real services over the file stores and
// returns a cleanup restoring the previous wiring.
func setupTestServices(t *testing.T) func() {
	t.Helper()
	resetRunFlags()

	registry := services.NewStoreRegistry()
	registry.RegisterSource(csvfile.NewSource())
	registry.RegisterSink(csvfile.NewSink())
	registry.RegisterSource(jsonfile.NewSource())
	registry.RegisterSink(jsonfile.NewSink())
	registry.RegisterSource(sqldb.NewSource())
	registry.RegisterSink(sqldb.NewSink())

	analyzer := sentiment.NewAnalyzer()
	store, err := file.NewConfigStoreAt(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	prev := currentServices()
	SetServices(Services{
		Pipeline: services.NewPipelineService(registry, analyzer, logger.Discard()),
		Scorer:   services.NewScoreService(analyzer),
		Catalog:  registry,
		Config:   store,
		OpenConfig: func(path string) (driven.ConfigStore, error) {
			return file.NewConfigStoreAt(path)
		},
		LogLevel: new(slog.LevelVar),
	})
	return func() { SetServices(prev) }
}

func currentServices() Services {
	return Services{
		Pipeline:   pipelineService,
		Scorer:     scoreService,
		Catalog:    storeCatalog,
		Config:     configStore,
		OpenConfig: openConfig,
		LogLevel:   logLevel,
	}
}

// executeCommand runs the root command with args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetRunFlags clears flag state left behind by earlier executions.
func resetRunFlags() {
	runSourceType, runSource, runTextColumn, runQuery = "", "", "", ""
	runOutputType, runOutput, runTable, runIfExists = "", "", "", ""
	runReport = ""
	runRetries = 0
	runNoSummary, runWatch, runPlain = false, false, false
	scoreJSON = false
	configPath, verbose = "", false
}
