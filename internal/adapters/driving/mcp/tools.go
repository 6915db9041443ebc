package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
	"github.com/OhhJay/nlp-pipeline/internal/report"
)

// ScoreInput is the input schema for the score_text tool.
type ScoreInput struct {
	Text string `json:"text" jsonschema:"the text to score"`
}

// ScoreOutput is the output schema for the score_text tool.
type ScoreOutput struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
	Label        string  `json:"label"`
	Fallback     bool    `json:"fallback,omitempty"`
}

// RunInput is the input schema for the run_pipeline tool.
type RunInput struct {
	SourceType string `json:"source_type" jsonschema:"source store kind: csv, json, sql, redis, cassandra, github-issues, or gsheet"`
	Source     string `json:"source" jsonschema:"source location: file path, DSN, server address, owner/repo, or spreadsheet ID"`
	TextColumn string `json:"text_column" jsonschema:"column holding the text to score"`
	Query      string `json:"query,omitempty" jsonschema:"read query or key for store kinds that take one"`
	OutputType string `json:"output_type" jsonschema:"destination store kind: csv, json, sql, redis, or cassandra"`
	Output     string `json:"output" jsonschema:"destination location"`
	Table      string `json:"table,omitempty" jsonschema:"destination table or key for store kinds that write into one"`
	IfExists   string `json:"if_exists,omitempty" jsonschema:"write policy against existing data: append, replace, or fail"`
	Summary    bool   `json:"summary,omitempty" jsonschema:"include the plain-text statistics report in the result"`
}

// RunOutput is the output schema for the run_pipeline tool.
type RunOutput struct {
	Rows    int    `json:"rows"`
	Summary string `json:"summary,omitempty"`
}

// StoreOutput describes one registered store kind.
type StoreOutput struct {
	Kind    string   `json:"kind"`
	Options []string `json:"options,omitempty"`
}

// ListStoresInput is the input schema for the list_stores tool.
type ListStoresInput struct{}

// ListStoresOutput is the output schema for the list_stores tool.
type ListStoresOutput struct {
	Sources []StoreOutput `json:"sources"`
	Sinks   []StoreOutput `json:"sinks"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_text",
		Description: "Score the sentiment of a single text",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_pipeline",
		Description: "Run the sentiment pipeline from a source store to a destination store",
	}, s.handleRun)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_stores",
		Description: "List the supported source and destination store kinds",
	}, s.handleListStores)
}

// handleScore handles the score_text tool invocation.
func (s *Server) handleScore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	outcome := s.ports.Scorer.ScoreText(ctx, input.Text)

	return nil, ScoreOutput{
		Polarity:     outcome.Sentiment.Polarity,
		Subjectivity: outcome.Sentiment.Subjectivity,
		Label:        string(outcome.Sentiment.Label),
		Fallback:     outcome.Fallback,
	}, nil
}

// handleRun handles the run_pipeline tool invocation.
func (s *Server) handleRun(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunInput,
) (*mcp.CallToolResult, RunOutput, error) {
	source := domain.SourceConfig{
		Kind:       domain.StoreKind(input.SourceType),
		Location:   input.Source,
		Query:      input.Query,
		TextColumn: input.TextColumn,
	}
	dest := domain.DestConfig{
		Kind:     domain.StoreKind(input.OutputType),
		Location: input.Output,
		Table:    input.Table,
		Policy:   domain.WritePolicy(input.IfExists),
	}

	_, summary, err := s.ports.Pipeline.Run(ctx, source, dest)
	if err != nil {
		return nil, RunOutput{}, err
	}

	output := RunOutput{Rows: summary.TotalRows}
	if input.Summary {
		output.Summary = report.Render(summary)
	}
	return nil, output, nil
}

// handleListStores handles the list_stores tool invocation.
func (s *Server) handleListStores(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListStoresInput,
) (*mcp.CallToolResult, ListStoresOutput, error) {
	output := ListStoresOutput{
		Sources: []StoreOutput{},
		Sinks:   []StoreOutput{},
	}
	if s.ports.Catalog == nil {
		return nil, output, nil
	}

	output.Sources = storeOutputs(s.ports.Catalog.Sources())
	output.Sinks = storeOutputs(s.ports.Catalog.Sinks())
	return nil, output, nil
}

// storeOutputs converts catalog entries to the wire shape.
func storeOutputs(infos []driving.StoreInfo) []StoreOutput {
	out := make([]StoreOutput, len(infos))
	for i, info := range infos {
		keys := make([]string, len(info.ConfigKeys))
		for j, key := range info.ConfigKeys {
			keys[j] = key.Key
		}
		out[i] = StoreOutput{Kind: string(info.Kind), Options: keys}
	}
	return out
}
