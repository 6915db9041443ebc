// Command nlp-pipeline scores the sentiment of tabular text data.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/OhhJay/nlp-pipeline/internal/adapters/driven/auth"
	"github.com/OhhJay/nlp-pipeline/internal/adapters/driven/config/file"
	"github.com/OhhJay/nlp-pipeline/internal/adapters/driving/cli"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
	"github.com/OhhJay/nlp-pipeline/internal/core/services"
	"github.com/OhhJay/nlp-pipeline/internal/logger"
	"github.com/OhhJay/nlp-pipeline/internal/sentiment"
	"github.com/OhhJay/nlp-pipeline/internal/stores/cassandra"
	"github.com/OhhJay/nlp-pipeline/internal/stores/csvfile"
	"github.com/OhhJay/nlp-pipeline/internal/stores/githubissues"
	"github.com/OhhJay/nlp-pipeline/internal/stores/gsheet"
	"github.com/OhhJay/nlp-pipeline/internal/stores/jsonfile"
	"github.com/OhhJay/nlp-pipeline/internal/stores/redisdb"
	"github.com/OhhJay/nlp-pipeline/internal/stores/sqldb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	level := new(slog.LevelVar)
	log := logger.New(os.Stderr, level)

	// Stored defaults are optional; flags still work without them.
	var configStore driven.ConfigStore
	if store, err := file.NewConfigStore(""); err != nil {
		log.Warn("config store unavailable", "error", err)
	} else {
		configStore = store
	}

	tokens := buildTokenProvider(configStore)

	registry := services.NewStoreRegistry()
	registry.RegisterSource(csvfile.NewSource())
	registry.RegisterSource(jsonfile.NewSource())
	registry.RegisterSource(sqldb.NewSource())
	registry.RegisterSource(redisdb.NewSource())
	registry.RegisterSource(cassandra.NewSource())
	registry.RegisterSource(githubissues.NewSource(tokens))
	registry.RegisterSource(gsheet.NewSource(tokens))
	registry.RegisterSink(csvfile.NewSink())
	registry.RegisterSink(jsonfile.NewSink())
	registry.RegisterSink(sqldb.NewSink())
	registry.RegisterSink(redisdb.NewSink())
	registry.RegisterSink(cassandra.NewSink())

	analyzer := sentiment.NewAnalyzer()

	cli.SetServices(cli.Services{
		Pipeline: services.NewPipelineService(registry, analyzer, log),
		Scorer:   services.NewScoreService(analyzer),
		Catalog:  registry,
		Config:   configStore,
		OpenConfig: func(path string) (driven.ConfigStore, error) {
			return file.NewConfigStoreAt(path)
		},
		LogLevel: level,
	})

	if err := cli.Execute(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildTokenProvider prefers a stored github.token and falls back to
// the GITHUB_TOKEN environment variable.
func buildTokenProvider(configStore driven.ConfigStore) driven.TokenProvider {
	var providers []driven.TokenProvider
	if configStore != nil {
		providers = append(providers, auth.NewStaticTokenProvider(configStore.GetString("github.token")))
	}
	providers = append(providers, auth.NewEnvTokenProvider("GITHUB_TOKEN"))
	return auth.NewChainTokenProvider(providers...)
}
