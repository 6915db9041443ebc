package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrSourceNotFound indicates the configured source path or key does
	// not exist.
	ErrSourceNotFound = errors.New("source not found")

	// ErrUnsupportedKind indicates an unknown store kind.
	ErrUnsupportedKind = errors.New("unsupported store kind")

	// ErrEmptyDataset indicates a source produced no rows to process.
	ErrEmptyDataset = errors.New("dataset is empty")

	// ErrRunInProgress indicates the orchestrator is already running.
	ErrRunInProgress = errors.New("run in progress")
)

// ConfigurationError reports a missing or invalid configuration value.
// It is fatal and raised before any row processing.
type ConfigurationError struct {
	// Field is the configuration field, e.g. "output.if_exists".
	Field string
	// Value is the offending value as given.
	Value string
	// Reason explains what is wrong with it.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%q: %s", e.Field, e.Value, e.Reason)
}

// SourceFormatError reports that a source could not be parsed.
type SourceFormatError struct {
	// Location is the path or descriptor that failed to parse.
	Location string
	// Err is the underlying parse failure.
	Err error
}

func (e *SourceFormatError) Error() string {
	return fmt.Sprintf("parsing source %q: %v", e.Location, e.Err)
}

func (e *SourceFormatError) Unwrap() error { return e.Err }

// ConnectionError reports a failure to reach a store.
type ConnectionError struct {
	// Target is the DSN, address, or service that was unreachable.
	Target string
	// Err is the underlying connection failure.
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connecting to %q: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError reports a failing read query or range request.
type QueryError struct {
	// Query is the statement, range, or request that failed.
	Query string
	// Err is the underlying failure.
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("executing query %q: %v", e.Query, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// MissingColumnError reports that the requested text column is absent
// from a loaded dataset. It names the requested column and every column
// the dataset actually has.
type MissingColumnError struct {
	// Column is the requested column name.
	Column string
	// Available lists the columns present in the dataset.
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found in source; available columns: [%s]",
		e.Column, strings.Join(e.Available, ", "))
}

// TableConflictError reports that the destination already exists and the
// write policy is fail. The destination is left unchanged.
type TableConflictError struct {
	// Table is the conflicting table name or key.
	Table string
}

func (e *TableConflictError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Table)
}
