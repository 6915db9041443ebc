package domain

// StoreKind identifies a data store strategy.
type StoreKind string

const (
	// KindCSV is a delimited file on the local filesystem.
	KindCSV StoreKind = "csv"
	// KindJSON is a structured file holding an array of objects.
	KindJSON StoreKind = "json"
	// KindSQL is a relational database reached through a DSN.
	KindSQL StoreKind = "sql"
	// KindRedis is a Redis list of JSON-encoded rows.
	KindRedis StoreKind = "redis"
	// KindCassandra is a Cassandra table.
	KindCassandra StoreKind = "cassandra"
	// KindGitHubIssues reads the issues of a GitHub repository.
	KindGitHubIssues StoreKind = "github-issues"
	// KindGoogleSheet reads a Google Sheets value range.
	KindGoogleSheet StoreKind = "gsheet"
)

// WritePolicy selects the behaviour when the destination already exists.
type WritePolicy string

const (
	// PolicyAppend adds rows to any existing content.
	PolicyAppend WritePolicy = "append"
	// PolicyReplace discards existing content and rewrites it.
	PolicyReplace WritePolicy = "replace"
	// PolicyFail aborts when the destination table or key already exists.
	PolicyFail WritePolicy = "fail"
)

// Valid reports whether the policy is one of the three known values.
func (p WritePolicy) Valid() bool {
	switch p {
	case PolicyAppend, PolicyReplace, PolicyFail:
		return true
	}
	return false
}

// DefaultTextColumn is assumed when no text column is configured.
const DefaultTextColumn = "text"

// SourceConfig describes where and how to load the input dataset.
type SourceConfig struct {
	// Kind selects the store strategy.
	Kind StoreKind

	// Location is the path, DSN, server address, "owner/repo", or
	// spreadsheet ID, depending on Kind.
	Location string

	// Query is the read-only query, list key, or range for kinds that
	// take one. File kinds ignore it.
	Query string

	// TextColumn names the column carrying the text to score.
	TextColumn string

	// Settings carries kind-specific options such as tokens, keyspaces,
	// or sheet names.
	Settings map[string]string
}

// Setting returns a kind-specific option, or the empty string.
func (c *SourceConfig) Setting(key string) string {
	if c.Settings == nil {
		return ""
	}
	return c.Settings[key]
}

// Validate checks the fields every source kind requires.
// Kind-specific checks live with the store implementations.
func (c *SourceConfig) Validate() error {
	if c.Kind == "" {
		return &ConfigurationError{Field: "source.kind", Value: "", Reason: "must not be empty"}
	}
	if c.Location == "" {
		return &ConfigurationError{Field: "source.location", Value: "", Reason: "must not be empty"}
	}
	if c.TextColumn == "" {
		return &ConfigurationError{Field: "source.text_column", Value: "", Reason: "must not be empty"}
	}
	return nil
}

// DestConfig describes where and how to persist the processed dataset.
type DestConfig struct {
	// Kind selects the store strategy.
	Kind StoreKind

	// Location is the path, DSN, or server address, depending on Kind.
	Location string

	// Table names the destination table or list key for store kinds
	// that write into a named container. File kinds ignore it.
	Table string

	// Policy selects behaviour against an existing table or key.
	Policy WritePolicy

	// WriteReport requests a plain-text statistics report beside the
	// primary output.
	WriteReport bool

	// ReportPath overrides the default report location when set.
	ReportPath string

	// Settings carries kind-specific options.
	Settings map[string]string
}

// Setting returns a kind-specific option, or the empty string.
func (c *DestConfig) Setting(key string) string {
	if c.Settings == nil {
		return ""
	}
	return c.Settings[key]
}

// Validate checks the fields every destination kind requires.
func (c *DestConfig) Validate() error {
	if c.Kind == "" {
		return &ConfigurationError{Field: "output.kind", Value: "", Reason: "must not be empty"}
	}
	if c.Location == "" {
		return &ConfigurationError{Field: "output.location", Value: "", Reason: "must not be empty"}
	}
	if c.Policy == "" {
		c.Policy = PolicyAppend
	}
	if !c.Policy.Valid() {
		return &ConfigurationError{
			Field:  "output.if_exists",
			Value:  string(c.Policy),
			Reason: "must be one of append, replace, fail",
		}
	}
	return nil
}

// ConfigKey describes a configuration field a store kind understands.
type ConfigKey struct {
	// Key is the configuration key name.
	Key string
	// Label is the human-readable label for display.
	Label string
	// Description explains what this field is for.
	Description string
	// Default is the default value for this field.
	Default string
	// Required indicates whether this field must be provided.
	Required bool
	// Secret indicates whether this field should be masked (e.g., tokens).
	Secret bool
}
