package tui

import "errors"

// ErrMissingPipelineService is returned when the pipeline service is not provided.
var ErrMissingPipelineService = errors.New("tui: pipeline service is required")

// ErrMissingRun is returned when the run spec carries no run function.
var ErrMissingRun = errors.New("tui: run function is required")
