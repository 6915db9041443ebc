package gsheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driven"
)

// requestsPerSecond keeps reads inside the per-user quota.
const requestsPerSecond = 1

const (
	settingToken  = "token"
	settingAPIKey = "api_key"
)

// Source reads a spreadsheet values range into a dataset. The first row
// of the range is the header; shorter data rows pad with nil.
type Source struct {
	tokens  driven.TokenProvider
	limiter *rate.Limiter
}

var _ driven.DataSource = (*Source)(nil)

// NewSource creates a Google Sheets source. The provider supplies the
// access token when the settings carry neither a token nor an API key;
// it may be nil.
func NewSource(tokens driven.TokenProvider) *Source {
	return &Source{
		tokens:  tokens,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Kind returns the store kind this source handles.
func (s *Source) Kind() domain.StoreKind {
	return domain.KindGoogleSheet
}

// ConfigKeys lists the kind-specific configuration fields.
func (s *Source) ConfigKeys() []domain.ConfigKey {
	return []domain.ConfigKey{
		{
			Key:         settingToken,
			Label:       "Token",
			Description: "OAuth access token, falls back to the configured provider",
			Secret:      true,
		},
		{
			Key:         settingAPIKey,
			Label:       "API key",
			Description: "API key for public spreadsheets",
			Secret:      true,
		},
	}
}

// Load fetches the range cfg.Query from the spreadsheet cfg.Location.
func (s *Source) Load(ctx context.Context, cfg domain.SourceConfig) (*domain.Dataset, error) {
	rangeRef := cfg.Query
	if rangeRef == "" {
		return nil, &domain.ConfigurationError{
			Field:  "source.query",
			Value:  "",
			Reason: "values range required for gsheet sources, e.g. Sheet1!A:D",
		}
	}

	svc, err := s.newService(ctx, &cfg)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := svc.Spreadsheets.Values.Get(cfg.Location, rangeRef).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			if apiErr.Code == http.StatusNotFound {
				return nil, fmt.Errorf("%s: %w", cfg.Location, domain.ErrSourceNotFound)
			}
			return nil, &domain.QueryError{Query: rangeRef, Err: err}
		}
		return nil, &domain.ConnectionError{Target: "sheets.googleapis.com", Err: err}
	}

	if len(resp.Values) == 0 {
		return nil, &domain.SourceFormatError{Location: cfg.Location, Err: errors.New("missing header row")}
	}

	dataset := datasetFromValues(resp.Values)
	if !dataset.HasColumn(cfg.TextColumn) {
		return nil, &domain.MissingColumnError{Column: cfg.TextColumn, Available: dataset.Columns}
	}

	return dataset, nil
}

// newService builds the API service with the strongest available
// credential: an explicit token, the token provider, an API key, or
// anonymous access, in that order.
func (s *Source) newService(ctx context.Context, cfg *domain.SourceConfig) (*sheets.Service, error) {
	token := cfg.Setting(settingToken)
	if token == "" && s.tokens != nil {
		provided, err := s.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("get token: %w", err)
		}
		token = provided
	}

	var opts []option.ClientOption
	switch {
	case token != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		opts = append(opts, option.WithTokenSource(ts))
	case cfg.Setting(settingAPIKey) != "":
		opts = append(opts, option.WithAPIKey(cfg.Setting(settingAPIKey)))
	default:
		opts = append(opts, option.WithoutAuthentication())
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &domain.ConnectionError{Target: "sheets.googleapis.com", Err: err}
	}
	return svc, nil
}

// datasetFromValues maps a values range onto a dataset. The first row
// names the columns.
func datasetFromValues(values [][]interface{}) *domain.Dataset {
	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = fmt.Sprintf("%v", cell)
	}

	dataset := domain.NewDataset(header)
	for _, line := range values[1:] {
		row := make(domain.Row, len(header))
		for i, col := range header {
			if i < len(line) {
				row[col] = line[i]
			} else {
				row[col] = nil
			}
		}
		dataset.Append(row)
	}
	return dataset
}
