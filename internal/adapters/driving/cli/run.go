package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/OhhJay/nlp-pipeline/internal/adapters/driving/tui"
	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
	"github.com/OhhJay/nlp-pipeline/internal/report"
)

// watchDebounce folds a burst of file events into one re-run.
const watchDebounce = 500 * time.Millisecond

var (
	runSourceType string
	runSource     string
	runTextColumn string
	runQuery      string
	runOutputType string
	runOutput     string
	runTable      string
	runIfExists   string
	runNoSummary  bool
	runReport     string
	runRetries    int
	runWatch      bool
	runPlain      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a dataset, score it and save the result",
	Long: `Runs the sentiment pipeline: load the source dataset, score its text
column and persist the enriched rows to the output destination.

Flags left unset fall back to the config file; kind-specific options
such as cassandra.keyspace or github-issues.token come from the
matching config table.

Examples:
  # Score a CSV file and write the enriched copy next to it
  nlp-pipeline run --source-type csv --source reviews.csv \
    --output-type csv --output scored.csv

  # Read a SQLite table, replace the output table on every run
  nlp-pipeline run --source-type sql --source reviews.db \
    --query "SELECT id, body FROM reviews" --text-column body \
    --output-type sql --output scored.db --table scored --if-exists replace

  # Re-score a file whenever it changes
  nlp-pipeline run --source-type csv --source reviews.csv \
    --output-type csv --output scored.csv --watch`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runSourceType, "source-type", "", "source kind (csv, json, sql, redis, cassandra, github-issues, gsheet)")
	runCmd.Flags().StringVar(&runSource, "source", "", "source location: path, DSN, address, owner/repo or spreadsheet ID")
	runCmd.Flags().StringVar(&runTextColumn, "text-column", "", "column holding the text to score (default \"text\")")
	runCmd.Flags().StringVar(&runQuery, "query", "", "query, list key or values range, for source kinds that take one")
	runCmd.Flags().StringVar(&runOutputType, "output-type", "", "output kind (csv, json, sql, redis, cassandra)")
	runCmd.Flags().StringVar(&runOutput, "output", "", "output location: path, DSN or address")
	runCmd.Flags().StringVar(&runTable, "table", "", "output table or list key, for kinds that write into one")
	runCmd.Flags().StringVar(&runIfExists, "if-exists", "", "existing output policy: append, replace or fail (default append)")
	runCmd.Flags().BoolVar(&runNoSummary, "no-summary", false, "skip the summary printed after the run")
	runCmd.Flags().StringVar(&runReport, "report", "", "also write a plain-text report to this path")
	runCmd.Flags().IntVar(&runRetries, "retries", 0, "retry transient failures up to N times with backoff")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "re-run when the source file changes (file sources only, implies --plain)")
	runCmd.Flags().BoolVar(&runPlain, "plain", false, "line-oriented output, no interactive progress")
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}

	source := buildSourceConfig()
	dest := buildDestConfig()

	if storeCatalog != nil {
		if err := storeCatalog.ValidateSourceConfig(source); err != nil {
			return err
		}
		if err := storeCatalog.ValidateDestConfig(dest); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	switch {
	case runWatch:
		if !fileKind(source.Kind) {
			return &domain.ConfigurationError{
				Field:  "source.kind",
				Value:  string(source.Kind),
				Reason: "--watch requires a file source",
			}
		}
		return executeWatch(ctx, cmd, source, dest)
	case runPlain || !term.IsTerminal(int(os.Stdout.Fd())):
		return executeOnce(ctx, cmd, source, dest)
	default:
		return executeInteractive(ctx, cmd, source, dest)
	}
}

// executeOnce runs the pipeline and prints the summary.
func executeOnce(ctx context.Context, cmd *cobra.Command, source domain.SourceConfig, dest domain.DestConfig) error {
	summary, err := runWithRetries(ctx, source, dest)
	if err != nil {
		return err
	}
	if !runNoSummary {
		cmd.Println()
		cmd.Print(report.Render(summary))
	}
	return nil
}

// executeInteractive runs the pipeline behind the progress view and
// prints the styled summary once the view closes.
func executeInteractive(ctx context.Context, cmd *cobra.Command, source domain.SourceConfig, dest domain.DestConfig) error {
	spec := tui.RunSpec{
		Source: source,
		Dest:   dest,
		Run: func(ctx context.Context) (*domain.Summary, error) {
			return runWithRetries(ctx, source, dest)
		},
	}

	app, err := tui.NewApp(&tui.Ports{Pipeline: pipelineService}, spec)
	if err != nil {
		return fmt.Errorf("creating progress view: %w", err)
	}

	final, err := tea.NewProgram(app.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("running progress view: %w", err)
	}

	finished, ok := final.(*tui.App)
	if !ok {
		return errors.New("unexpected model returned from progress view")
	}
	if err := finished.Err(); err != nil {
		// The q key cancels the run; that is not a failure.
		if errors.Is(err, context.Canceled) {
			cmd.Println("Run cancelled.")
			return nil
		}
		return err
	}
	if summary := finished.Summary(); summary != nil && !runNoSummary {
		cmd.Print(tui.RenderSummary(summary))
	}
	return nil
}

// executeWatch re-runs the pipeline whenever the source file changes.
// Run failures are reported and watching continues; ctrl-c stops.
func executeWatch(ctx context.Context, cmd *cobra.Command, source domain.SourceConfig, dest domain.DestConfig) error {
	if err := executeOnce(ctx, cmd, source, dest); err != nil {
		cmd.PrintErrf("run failed: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, which drops a watch held
	// on the file itself, so watch its directory.
	target := filepath.Clean(source.Location)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	cmd.Printf("Watching %s for changes, ctrl-c to stop\n", target)

	var rerun <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			rerun = time.After(watchDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cmd.PrintErrf("watch error: %v\n", err)
		case <-rerun:
			rerun = nil
			cmd.Printf("%s changed, re-running\n", target)
			if err := executeOnce(ctx, cmd, source, dest); err != nil {
				cmd.PrintErrf("run failed: %v\n", err)
			}
		}
	}
}

// runWithRetries executes one pipeline run, retrying connection
// failures with fibonacci backoff when --retries is set.
func runWithRetries(ctx context.Context, source domain.SourceConfig, dest domain.DestConfig) (*domain.Summary, error) {
	retries := runRetries
	if retries < 0 {
		retries = 0
	}

	var summary *domain.Summary
	backoff := retry.WithMaxRetries(uint64(retries), retry.NewFibonacci(1*time.Second))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var runErr error
		_, summary, runErr = pipelineService.Run(ctx, source, dest)
		if runErr != nil && transient(runErr) {
			return retry.RetryableError(runErr)
		}
		return runErr
	})
	return summary, err
}

// transient reports whether a failure is worth retrying. Configuration
// and format errors stay permanent; only connection failures retry.
func transient(err error) bool {
	var connErr *domain.ConnectionError
	return errors.As(err, &connErr)
}

func fileKind(kind domain.StoreKind) bool {
	return kind == domain.KindCSV || kind == domain.KindJSON
}

// buildSourceConfig merges the run flags over the config file defaults.
func buildSourceConfig() domain.SourceConfig {
	kind := domain.StoreKind(flagOrConfig(runSourceType, "source.type"))
	cfg := domain.SourceConfig{
		Kind:       kind,
		Location:   flagOrConfig(runSource, "source.path"),
		Query:      flagOrConfig(runQuery, "source.query"),
		TextColumn: flagOrConfig(runTextColumn, "source.text_column"),
	}
	if cfg.Location == "" {
		cfg.Location = locationDefault(kind)
	}
	cfg.Settings = settingsFor(kind, catalogSources(), "query")
	return cfg
}

// buildDestConfig merges the run flags over the config file defaults.
func buildDestConfig() domain.DestConfig {
	kind := domain.StoreKind(flagOrConfig(runOutputType, "output.type"))
	cfg := domain.DestConfig{
		Kind:        kind,
		Location:    flagOrConfig(runOutput, "output.path"),
		Table:       flagOrConfig(runTable, "output.table"),
		Policy:      domain.WritePolicy(flagOrConfig(runIfExists, "output.if_exists")),
		WriteReport: runReport != "",
		ReportPath:  runReport,
	}
	if cfg.Location == "" {
		cfg.Location = locationDefault(kind)
	}
	if !cfg.WriteReport && configStore != nil {
		cfg.WriteReport = configStore.GetBool("output.report")
	}
	cfg.Settings = settingsFor(kind, catalogSinks(), "table")
	return cfg
}

// flagOrConfig returns the flag value, falling back to the config file.
func flagOrConfig(flag, key string) string {
	if flag != "" {
		return flag
	}
	return configString(key)
}

func configString(key string) string {
	if configStore == nil {
		return ""
	}
	return configStore.GetString(key)
}

// locationDefault resolves the server-kind location tables, so a config
// file can carry both redis.addr and cassandra.hosts at once.
func locationDefault(kind domain.StoreKind) string {
	switch kind {
	case domain.KindRedis:
		return configString("redis.addr")
	case domain.KindCassandra:
		return configString("cassandra.hosts")
	}
	return ""
}

// settingsFor lifts the kind's options from its config table, e.g.
// cassandra.keyspace or github-issues.token. Keys named in skip map to
// dedicated flags and stay out of the settings.
func settingsFor(kind domain.StoreKind, infos []driving.StoreInfo, skip ...string) map[string]string {
	if configStore == nil {
		return nil
	}
	for _, info := range infos {
		if info.Kind != kind {
			continue
		}
		settings := make(map[string]string)
		for _, key := range info.ConfigKeys {
			if contains(skip, key.Key) {
				continue
			}
			if value, ok := configStore.Get(string(kind) + "." + key.Key); ok {
				settings[key.Key] = fmt.Sprint(value)
			}
		}
		if len(settings) > 0 {
			return settings
		}
	}
	return nil
}

func catalogSources() []driving.StoreInfo {
	if storeCatalog == nil {
		return nil
	}
	return storeCatalog.Sources()
}

func catalogSinks() []driving.StoreInfo {
	if storeCatalog == nil {
		return nil
	}
	return storeCatalog.Sinks()
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
