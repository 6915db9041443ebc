package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

func writeReviewsCSV(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "reviews.csv")
	content := "id,text\n1,Great service!\n2,Terrible experience.\n3,It's okay.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunCmd_Use(t *testing.T) {
	assert.Equal(t, "run", runCmd.Use)
}

func TestRunCmd_Executes(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)
	output := filepath.Join(dir, "scored.csv")

	out, err := executeCommand(t,
		"run",
		"--source-type", "csv",
		"--source", source,
		"--output-type", "csv",
		"--output", output,
		"--plain",
	)

	require.NoError(t, err)
	assert.Contains(t, out, "Sentiment Analysis Summary")
	assert.Contains(t, out, "Total Records Processed: 3")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "polarity")
	assert.Contains(t, lines[1], "positive")
	assert.Contains(t, lines[2], "negative")
	assert.Contains(t, lines[3], "neutral")
}

func TestRunCmd_NoSummary(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)

	out, err := executeCommand(t,
		"run",
		"--source-type", "csv",
		"--source", source,
		"--output-type", "csv",
		"--output", filepath.Join(dir, "scored.csv"),
		"--plain",
		"--no-summary",
	)

	require.NoError(t, err)
	assert.NotContains(t, out, "Sentiment Analysis Summary")
}

func TestRunCmd_WritesReport(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)
	reportPath := filepath.Join(dir, "run.summary.txt")

	_, err := executeCommand(t,
		"run",
		"--source-type", "csv",
		"--source", source,
		"--output-type", "csv",
		"--output", filepath.Join(dir, "scored.csv"),
		"--report", reportPath,
		"--plain",
	)

	require.NoError(t, err)
	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Sentiment Distribution:")
}

func TestRunCmd_OverwritesOutput(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)
	output := filepath.Join(dir, "scored.csv")

	for i := 0; i < 2; i++ {
		_, err := executeCommand(t,
			"run",
			"--source-type", "csv",
			"--source", source,
			"--output-type", "csv",
			"--output", output,
			"--plain",
			"--no-summary",
		)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 4)
}

func TestRunCmd_ConfigDefaults(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)
	output := filepath.Join(dir, "scored.csv")

	require.NoError(t, configStore.Set("source.type", "csv"))
	require.NoError(t, configStore.Set("source.path", source))
	require.NoError(t, configStore.Set("output.type", "csv"))
	require.NoError(t, configStore.Set("output.path", output))

	_, err := executeCommand(t, "run", "--plain", "--no-summary")

	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRunCmd_ConfigFlag(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)
	output := filepath.Join(dir, "scored.csv")

	configFile := filepath.Join(dir, "pipeline.toml")
	content := fmt.Sprintf(
		"[source]\ntype = \"csv\"\npath = %q\n\n[output]\ntype = \"csv\"\npath = %q\n",
		source, output,
	)
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0600))

	_, err := executeCommand(t, "run", "--config", configFile, "--plain", "--no-summary")

	require.NoError(t, err)
	assert.FileExists(t, output)
}

func TestRunCmd_UnknownSourceKind(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()

	_, err := executeCommand(t,
		"run",
		"--source-type", "parquet",
		"--source", filepath.Join(dir, "reviews.parquet"),
		"--output-type", "csv",
		"--output", filepath.Join(dir, "scored.csv"),
		"--plain",
	)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedKind)
	assert.Contains(t, err.Error(), "parquet")
}

func TestRunCmd_MissingColumn(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	source := writeReviewsCSV(t, dir)

	_, err := executeCommand(t,
		"run",
		"--source-type", "csv",
		"--source", source,
		"--text-column", "comment",
		"--output-type", "csv",
		"--output", filepath.Join(dir, "scored.csv"),
		"--plain",
	)

	require.Error(t, err)
	var missing *domain.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"id", "text"}, missing.Available)
}

func TestRunCmd_WatchRequiresFileSource(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	dir := t.TempDir()
	db := filepath.Join(dir, "reviews.db")
	require.NoError(t, os.WriteFile(db, nil, 0644))

	_, err := executeCommand(t,
		"run",
		"--source-type", "sql",
		"--source", db,
		"--query", "SELECT id, text FROM reviews",
		"--output-type", "csv",
		"--output", filepath.Join(dir, "scored.csv"),
		"--watch",
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch requires a file source")
}

func TestRunCmd_ErrorsWithoutServices(t *testing.T) {
	// Reset services to nil
	oldPipeline := pipelineService
	pipelineService = nil
	defer func() { pipelineService = oldPipeline }()

	resetRunFlags()

	_, err := executeCommand(t, "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
