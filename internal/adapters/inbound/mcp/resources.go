package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// registerResources registers all HappyShop MCP resources on the given server.
func registerResources(s *server.MCPServer, st *shopState) {
	// 1. happyshop://trolley - current trolley lines
	s.AddResource(
		mcplib.NewResource(
			"happyshop://trolley",
			"Trolley",
			mcplib.WithResourceDescription("Lines currently in the trolley, ascending by product id"),
			mcplib.WithMIMEType("application/json"),
		),
		handleTrolleyResource(st),
	)

	// 2. happyshop://orders - order history
	s.AddResource(
		mcplib.NewResource(
			"happyshop://orders",
			"Orders",
			mcplib.WithResourceDescription("Confirmed orders, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleOrdersResource(st),
	)
}

func handleTrolleyResource(st *shopState) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		st.mu.Lock()
		lines := st.session.Lines()
		st.mu.Unlock()
		return jsonResource("happyshop://trolley", lines)
	}
}

func handleOrdersResource(st *shopState) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		if st.orders == nil {
			return jsonResource("happyshop://orders", []any{})
		}
		orders, err := st.orders.Load()
		if err != nil {
			return nil, fmt.Errorf("loading orders: %w", err)
		}
		return jsonResource("happyshop://orders", orders)
	}
}

func jsonResource(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
