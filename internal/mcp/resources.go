// ABOUTME: MCP resource implementations for trainerlog.
// ABOUTME: Provides trainerlog://clients, the roster of clients found in the session log.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/trainerlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const clientsURI = "trainerlog://clients"

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         clientsURI,
		Name:        "Clients",
		Description: "Every client key and handle in the session log with session counts",
		MIMEType:    "application/json",
	}, s.handleClientsResource)
}

type clientEntry struct {
	Client       string `json:"client"`
	ClientKey    string `json:"client_name_key,omitempty"`
	IGUsername   string `json:"ig_username,omitempty"`
	SessionCount int    `json:"session_count"`
	LastSession  string `json:"last_session"`
}

func (s *Server) handleClientsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	clients, err := s.reader.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	entries := make([]clientEntry, 0, len(clients))
	for _, c := range clients {
		entries = append(entries, clientEntry{
			Client:       models.NewClientIdentity(c.ClientKey, c.IGUsername).String(),
			ClientKey:    c.ClientKey,
			IGUsername:   c.IGUsername,
			SessionCount: c.SessionCount,
			LastSession:  models.FormatDate(c.LastSession),
		})
	}

	data, err := json.MarshalIndent(map[string]any{
		"clients": entries,
		"count":   len(entries),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      clientsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
