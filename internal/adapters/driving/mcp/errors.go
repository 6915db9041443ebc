// Package mcp provides an MCP (Model Context Protocol) server adapter for
// the pipeline. It enables AI assistants like Claude to score text and
// drive pipeline runs.
package mcp

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("mcp: pipeline service is required")

// ErrMissingScoreService is returned when the score service is not provided.
var ErrMissingScoreService = errors.New("mcp: score service is required")
