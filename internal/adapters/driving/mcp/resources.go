package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/OhhJay/nlp-pipeline/internal/core/domain"
	"github.com/OhhJay/nlp-pipeline/internal/core/ports/driving"
)

const (
	// uriScheme is the custom URI scheme for pipeline resources.
	uriScheme = "nlp://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the store catalog.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stores",
		Name:        "stores",
		Description: "Supported source and destination store kinds",
		MIMEType:    "application/json",
	}, s.handleStoresResource)

	// Template for the configuration keys of one store kind.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "stores/{kind}",
		Name:        "store-config",
		Description: "Configuration keys accepted by a specific store kind",
		MIMEType:    "application/json",
	}, s.handleStoreConfigResource)

	// Static resource for the current run progress.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "progress",
		Name:        "progress",
		Description: "State of the pipeline run currently in flight",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

// handleStoresResource returns the catalog of registered store kinds.
func (s *Server) handleStoresResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	catalog := ListStoresOutput{
		Sources: []StoreOutput{},
		Sinks:   []StoreOutput{},
	}
	if s.ports.Catalog != nil {
		catalog.Sources = storeOutputs(s.ports.Catalog.Sources())
		catalog.Sinks = storeOutputs(s.ports.Catalog.Sinks())
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stores: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleStoreConfigResource returns the config keys for one store kind.
func (s *Server) handleStoreConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Catalog == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract the kind from URI: nlp://stores/{kind}
	kind := extractKind(req.Params.URI)
	if kind == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	keys, ok := configKeysFor(s.ports.Catalog, domain.StoreKind(kind))
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Build simplified key list.
	type keyInfo struct {
		Key         string `json:"key"`
		Description string `json:"description"`
		Default     string `json:"default,omitempty"`
		Required    bool   `json:"required"`
		Secret      bool   `json:"secret,omitempty"`
	}

	infos := make([]keyInfo, len(keys))
	for i, key := range keys {
		infos[i] = keyInfo{
			Key:         key.Key,
			Description: key.Description,
			Default:     key.Default,
			Required:    key.Required,
			Secret:      key.Secret,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling store config: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleProgressResource returns the progress of the run in flight.
func (s *Server) handleProgressResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	progress := s.ports.Pipeline.Progress()

	type progressInfo struct {
		State     string `json:"state"`
		Processed int    `json:"processed"`
		Total     int    `json:"total"`
	}

	data, err := json.MarshalIndent(progressInfo{
		State:     string(progress.State),
		Processed: progress.Processed,
		Total:     progress.Total,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling progress: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// configKeysFor looks up the config keys of a kind across sources and sinks.
func configKeysFor(catalog driving.StoreCatalog, kind domain.StoreKind) ([]domain.ConfigKey, bool) {
	for _, info := range catalog.Sources() {
		if info.Kind == kind {
			return info.ConfigKeys, true
		}
	}
	for _, info := range catalog.Sinks() {
		if info.Kind == kind {
			return info.ConfigKeys, true
		}
	}
	return nil, false
}

// extractKind extracts the store kind from a URI like nlp://stores/{kind}.
func extractKind(uri string) string {
	const prefix = uriScheme + "stores/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
