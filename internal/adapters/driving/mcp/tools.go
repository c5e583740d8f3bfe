package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bauwerk-labs/talk2bim/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to ask about the loaded building model"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer string `json:"answer"`
}

// ListZonesInput is the input schema for the list_zones tool.
type ListZonesInput struct{}

// ListZonesOutput is the output schema for the list_zones tool.
type ListZonesOutput struct {
	Zones []ZoneOutput `json:"zones"`
	Count int          `json:"count"`
}

// ZoneOutput represents a single zone with its classified item count.
type ZoneOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"long_name,omitempty"`
	Items    int    `json:"items"`
}

// LoadInput is the input schema for the load_model tool.
type LoadInput struct {
	Path string `json:"path" jsonschema:"filesystem path of the IFC model file to load"`
}

// LoadOutput is the output schema for the load_model tool.
type LoadOutput struct {
	Zones   int `json:"zones"`
	Items   int `json:"items"`
	Skipped int `json:"skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question about the loaded building model",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_zones",
		Description: "List all zones of the loaded building model",
	}, s.handleListZones)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_model",
		Description: "Load an IFC model file and build its index",
	}, s.handleLoad)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	idx, err := s.currentIndex()
	if err != nil {
		return nil, AskOutput{}, err
	}

	answer := s.ports.Query.Answer(input.Question, idx)
	return nil, AskOutput{Answer: answer}, nil
}

// handleListZones handles the list_zones tool invocation.
func (s *Server) handleListZones(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListZonesInput,
) (*mcp.CallToolResult, ListZonesOutput, error) {
	idx, err := s.currentIndex()
	if err != nil {
		return nil, ListZonesOutput{}, err
	}

	zones := idx.ZonesByName()
	output := ListZonesOutput{
		Zones: make([]ZoneOutput, len(zones)),
		Count: len(zones),
	}
	for i, z := range zones {
		output.Zones[i] = ZoneOutput{
			ID:       z.ID,
			Name:     z.Name,
			LongName: z.LongName,
			Items:    len(z.Items),
		}
	}

	return nil, output, nil
}

// handleLoad handles the load_model tool invocation.
func (s *Server) handleLoad(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadInput,
) (*mcp.CallToolResult, LoadOutput, error) {
	session, err := s.ports.Session.Load(ctx, input.Path)
	if err != nil {
		return nil, LoadOutput{}, err
	}

	stats := session.Index.Stats
	return nil, LoadOutput{
		Zones:   stats.Zones,
		Items:   stats.Items,
		Skipped: stats.Skipped,
	}, nil
}

// currentIndex returns the index of the active session.
func (s *Server) currentIndex() (*domain.Index, error) {
	session, ok := s.ports.Session.Current()
	if !ok {
		return nil, domain.ErrNoModel
	}
	return session.Index, nil
}
