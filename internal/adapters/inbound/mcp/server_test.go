package mcp_test

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcpadapter "github.com/happyshop/happyshop/internal/adapters/inbound/mcp"
	"github.com/happyshop/happyshop/internal/adapters/outbound/config"
	"github.com/happyshop/happyshop/internal/adapters/outbound/memstore"
	"github.com/happyshop/happyshop/internal/adapters/outbound/orderid"
	"github.com/happyshop/happyshop/internal/adapters/outbound/orderlog"
	"github.com/happyshop/happyshop/internal/application"
	"github.com/happyshop/happyshop/internal/domain"
)

func newServer(t *testing.T) *server.MCPServer {
	t.Helper()
	products, err := config.LoadCatalogue("")
	require.NoError(t, err)
	store, err := memstore.New(products...)
	require.NoError(t, err)

	log := orderlog.New(filepath.Join(t.TempDir(), "orders.json"))
	checkout := application.NewCheckoutService(store,
		domain.NewOrderFactory(orderid.NewSequence(0, 6), nil),
		application.WithOrderLog(log),
	)
	session := application.NewSession(store, checkout)
	return mcpadapter.NewHappyShopMCPServer(session, log, nil)
}

// call sends a JSON-RPC request and returns the response re-encoded as a map.
func call(t *testing.T, s *server.MCPServer, id int, method string, params any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	resp := s.HandleMessage(context.Background(), raw)
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func callTool(t *testing.T, s *server.MCPServer, id int, name string, args map[string]any) (string, bool) {
	t.Helper()
	out := call(t, s, id, "tools/call", map[string]any{"name": name, "arguments": args})
	result, ok := out["result"].(map[string]any)
	require.True(t, ok, "no result in %v", out)

	isError, _ := result["isError"].(bool)
	content, ok := result["content"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, content)
	text, _ := content[0].(map[string]any)["text"].(string)
	return text, isError
}

func decodeView(t *testing.T, text string) domain.View {
	t.Helper()
	var v domain.View
	require.NoError(t, json.Unmarshal([]byte(text), &v), text)
	return v
}

func TestNewHappyShopMCPServer(t *testing.T) {
	s := newServer(t)
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := newServer(t)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"happyshop_search",
		"happyshop_add_to_trolley",
		"happyshop_checkout",
		"happyshop_cancel",
		"happyshop_close_receipt",
		"happyshop_view",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}

func TestMCP_ShoppingFlow(t *testing.T) {
	s := newServer(t)

	text, isErr := callTool(t, s, 1, "happyshop_search", map[string]any{"keyword": "radio"})
	require.False(t, isErr, text)
	assert.Equal(t, "1 products found for: radio", decodeView(t, text).Status)

	text, isErr = callTool(t, s, 2, "happyshop_add_to_trolley", map[string]any{"quantity": 2})
	require.False(t, isErr, text)
	assert.Contains(t, decodeView(t, text).Trolley, "(2)")

	text, isErr = callTool(t, s, 3, "happyshop_checkout", nil)
	require.False(t, isErr, text)
	v := decodeView(t, text)
	assert.Contains(t, v.Receipt, "Order_ID: 000001")
	assert.Empty(t, v.Trolley)

	text, isErr = callTool(t, s, 4, "happyshop_close_receipt", nil)
	require.False(t, isErr, text)
	assert.Empty(t, decodeView(t, text).Receipt)

	out := call(t, s, 5, "resources/read", map[string]any{"uri": "happyshop://orders"})
	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "000001")
}

func TestMCP_SearchRequiresKeyword(t *testing.T) {
	s := newServer(t)
	text, isErr := callTool(t, s, 1, "happyshop_search", map[string]any{})
	assert.True(t, isErr)
	assert.Contains(t, text, "keyword")
}

func TestMCP_AddRejectsBadQuantity(t *testing.T) {
	s := newServer(t)
	_, isErr := callTool(t, s, 1, "happyshop_add_to_trolley", map[string]any{"product_id": "0001", "quantity": 0})
	assert.True(t, isErr)
}

func TestMCP_TrolleyResource(t *testing.T) {
	s := newServer(t)
	callTool(t, s, 1, "happyshop_search", map[string]any{"keyword": "0007"})
	callTool(t, s, 2, "happyshop_add_to_trolley", map[string]any{"product_id": "0007"})

	out := call(t, s, 3, "resources/read", map[string]any{"uri": "happyshop://trolley"})
	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `0007`)
	assert.Contains(t, string(data), `USB4 cable`)
}

func TestMCP_ConcurrentCallsAreSerialized(t *testing.T) {
	s := newServer(t)
	callTool(t, s, 1, "happyshop_search", map[string]any{"keyword": "kettle"})

	const n = 20
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			raw := fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":"happyshop_add_to_trolley","arguments":{}}}`, 100+i)
			s.HandleMessage(context.Background(), json.RawMessage(raw))
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}

	text, _ := callTool(t, s, 999, "happyshop_view", nil)
	assert.Contains(t, decodeView(t, text).Trolley, fmt.Sprintf("(%d)", n))
}
