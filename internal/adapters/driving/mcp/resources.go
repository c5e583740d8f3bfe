package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for talk2bim resources.
	uriScheme = "talk2bim://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the index build stats.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Build statistics of the loaded model index",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// Static resource for the zone list.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "zones",
		Name:        "zones",
		Description: "All zones of the loaded model",
		MIMEType:    "application/json",
	}, s.handleZonesResource)

	// Template for the items of a single zone.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "zones/{zoneId}/items",
		Name:        "zone-items",
		Description: "Classified items contained in a specific zone",
		MIMEType:    "application/json",
	}, s.handleZoneItemsResource)
}

// handleStatsResource returns the build stats of the active index.
func (s *Server) handleStatsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	idx, err := s.currentIndex()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(idx.Stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling stats: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleZonesResource returns a list of all zones.
func (s *Server) handleZonesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	idx, err := s.currentIndex()
	if err != nil {
		return nil, err
	}

	zones := idx.ZonesByName()
	infos := make([]ZoneOutput, len(zones))
	for i, z := range zones {
		infos[i] = ZoneOutput{
			ID:       z.ID,
			Name:     z.Name,
			LongName: z.LongName,
			Items:    len(z.Items),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling zones: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleZoneItemsResource returns the classified items of a specific zone.
func (s *Server) handleZoneItemsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	idx, err := s.currentIndex()
	if err != nil {
		return nil, err
	}

	// Extract zoneId from URI: talk2bim://zones/{zoneId}/items
	zoneID := extractZoneID(req.Params.URI)
	if zoneID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	zone, ok := idx.Zones[zoneID]
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	type itemInfo struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Category string `json:"category"`
	}

	infos := make([]itemInfo, len(zone.Items))
	for i, item := range zone.Items {
		infos[i] = itemInfo{
			ID:       item.ID,
			Name:     item.DisplayName(),
			Type:     item.TypeName,
			Category: string(item.Category),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling items: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractZoneID extracts the zone ID from a URI like talk2bim://zones/{zoneId}/items.
func extractZoneID(uri string) string {
	const prefix = uriScheme + "zones/"
	const suffix = "/items"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	return strings.TrimSuffix(uri, suffix)
}
