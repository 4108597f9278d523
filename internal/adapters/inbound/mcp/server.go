package mcp

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	"github.com/happyshop/happyshop/internal/domain"
)

// Shopper is the session surface the tools drive.
type Shopper interface {
	Handle(ctx context.Context, in domain.Intent) (domain.View, error)
	View() domain.View
	Lines() []domain.Line
}

// shopState serializes tool calls onto the one session.
type shopState struct {
	mu      sync.Mutex
	session Shopper
	orders  domain.OrderLog
	logger  *slog.Logger
}

// NewHappyShopMCPServer creates an MCP server with all HappyShop tools and
// resources registered on top of session. orders may be nil.
func NewHappyShopMCPServer(session Shopper, orders domain.OrderLog, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := server.NewMCPServer(
		"happyshop",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	st := &shopState{session: session, orders: orders, logger: logger}
	registerTools(s, st)
	registerResources(s, st)

	return s
}
