package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

// version is set at build time via -ldflags.
var version = "dev"

// Ports injected by the composition root before Execute runs.
var (
	pipelineService driving.PipelineService
	scoreService    driving.ScoreService
	storeCatalog    driving.StoreCatalog
	configStore     driven.ConfigStore
	openConfig      func(path string) (driven.ConfigStore, error)
	logLevel        *slog.LevelVar
)

var (
	configPath string
	verbose    bool
)

// Services carries the constructed ports into the command tree.
type Services struct {
	Pipeline driving.PipelineService
	Scorer   driving.ScoreService
	Catalog  driving.StoreCatalog

	// Config supplies defaults for flags the user leaves unset.
	// OpenConfig replaces it when --config names another file.
	Config     driven.ConfigStore
	OpenConfig func(path string) (driven.ConfigStore, error)

	// LogLevel is raised to debug when --verbose is set.
	LogLevel *slog.LevelVar
}

// SetServices injects the ports the commands call.
// Must be called before Execute.
func SetServices(s Services) {
	pipelineService = s.Pipeline
	scoreService = s.Scorer
	storeCatalog = s.Catalog
	configStore = s.Config
	openConfig = s.OpenConfig
	logLevel = s.LogLevel
}

var rootCmd = &cobra.Command{
	Use:   "nlp-pipeline",
	Short: "Batch sentiment analysis over tabular data",
	Long: `nlp-pipeline loads tabular data from files, databases or web APIs,
scores the text column of every row with a lexicon-based sentiment
analyzer and writes the enriched dataset to a configurable destination.`,
	SilenceUsage:      true,
	PersistentPreRunE: applyGlobalFlags,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file with flag defaults (default ~/.nlp-pipeline/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func applyGlobalFlags(_ *cobra.Command, _ []string) error {
	if verbose && logLevel != nil {
		logLevel.Set(slog.LevelDebug)
	}

	if configPath == "" || openConfig == nil {
		return nil
	}
	store, err := openConfig(configPath)
	if err != nil {
		return fmt.Errorf("opening config %s: %w", configPath, err)
	}
	configStore = store
	return nil
}

// Execute runs the root command with the given context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
