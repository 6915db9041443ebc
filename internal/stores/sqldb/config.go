package sqldb

import (
	"fmt"
	"strings"
	"time"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// quoteIdent quotes a table or column identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// isFilePath reports whether the location names a database file rather
// than a URI or in-memory descriptor.
func isFilePath(location string) bool {
	return location != ":memory:" && !strings.HasPrefix(location, "file:")
}

// columnType picks a column type from the first non-nil value.
func columnType(dataset *domain.Dataset, column string) string {
	for _, row := range dataset.Rows {
		switch row[column].(type) {
		case nil:
			continue
		case float64:
			return "REAL"
		case int, int64:
			return "INTEGER"
		case bool:
			return "INTEGER"
		default:
			return "TEXT"
		}
	}
	return "TEXT"
}

// bindValue maps a dataset value onto a driver-friendly parameter.
func bindValue(v any) any {
	switch v.(type) {
	case nil, string, int, int64, float64, bool, []byte, time.Time:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
