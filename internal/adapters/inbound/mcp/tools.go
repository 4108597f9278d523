package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/happyshop/happyshop/internal/domain"
)

// registerTools registers all HappyShop MCP tools on the given server.
func registerTools(s *server.MCPServer, st *shopState) {
	// 1. happyshop_search
	s.AddTool(
		mcplib.NewTool("happyshop_search",
			mcplib.WithDescription("Search the catalogue by product id or description; the first hit becomes the selected product"),
			mcplib.WithString("keyword",
				mcplib.Required(),
				mcplib.Description("Text to look for in product ids and descriptions"),
			),
		),
		handleSearch(st),
	)

	// 2. happyshop_add_to_trolley
	s.AddTool(
		mcplib.NewTool("happyshop_add_to_trolley",
			mcplib.WithDescription("Add a product from the last search to the trolley"),
			mcplib.WithString("product_id",
				mcplib.Description("Product id from the last search; omit to add the selected product"),
			),
			mcplib.WithNumber("quantity",
				mcplib.Description("How many to add (default 1)"),
			),
		),
		handleAdd(st),
	)

	// 3. happyshop_checkout
	s.AddTool(
		mcplib.NewTool("happyshop_checkout",
			mcplib.WithDescription("Buy everything in the trolley, or report which products are short"),
		),
		handleIntent(st, domain.Checkout),
	)

	// 4. happyshop_cancel
	s.AddTool(
		mcplib.NewTool("happyshop_cancel",
			mcplib.WithDescription("Empty the trolley"),
		),
		handleIntent(st, domain.Cancel),
	)

	// 5. happyshop_close_receipt
	s.AddTool(
		mcplib.NewTool("happyshop_close_receipt",
			mcplib.WithDescription("Close the receipt of the last order"),
		),
		handleIntent(st, domain.CloseReceipt),
	)

	// 6. happyshop_view
	s.AddTool(
		mcplib.NewTool("happyshop_view",
			mcplib.WithDescription("Returns the current shop view: image, status, trolley and receipt"),
		),
		handleView(st),
	)
}

func handleSearch(st *shopState) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		keyword, err := request.RequireString("keyword")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return st.apply(ctx, domain.Search(keyword))
	}
}

func handleAdd(st *shopState) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		id := request.GetString("product_id", "")
		qty := request.GetInt("quantity", 1)
		if qty < 1 {
			return errorResult(fmt.Sprintf("quantity must be positive, got %d", qty)), nil
		}
		return st.apply(ctx, domain.AddToTrolley(id, qty))
	}
}

func handleIntent(st *shopState, intent func() domain.Intent) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return st.apply(ctx, intent())
	}
}

func handleView(st *shopState) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		st.mu.Lock()
		v := st.session.View()
		st.mu.Unlock()
		return jsonResult(v)
	}
}

// apply runs one intent under the session lock. Store faults come back as
// tool errors so the client can retry; the session stays usable.
func (st *shopState) apply(ctx context.Context, in domain.Intent) (*mcplib.CallToolResult, error) {
	st.mu.Lock()
	v, err := st.session.Handle(ctx, in)
	st.mu.Unlock()

	if err != nil {
		st.logger.WarnContext(ctx, "mcp intent failed", "intent", in.Kind.String(), "error", err)
		return errorResult(fmt.Sprintf("%s failed: %v", in.Kind, err)), nil
	}
	return jsonResult(v)
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
