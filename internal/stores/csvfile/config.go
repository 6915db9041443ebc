package csvfile

import (
	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
)

// settingDelimiter selects the field separator character.
const settingDelimiter = "delimiter"

// configKeys lists the options shared by the source and the sink.
func configKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         settingDelimiter,
			Label:       "Delimiter",
			Description: "Field separator, a single character",
			Default:     ",",
		},
	}
}

// delimiterRune parses the delimiter setting. An empty setting selects
// the comma default.
func delimiterRune(value string) (rune, error) {
	if value == "" {
		return ',', nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, &domain.ConfigurationError{
			Field:  settingDelimiter,
			Value:  value,
			Reason: "must be a single character",
		}
	}
	return runes[0], nil
}
