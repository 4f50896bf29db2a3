package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
)

// BoardService defines board operations needed by MCP.
type BoardService interface {
	Create(ctx context.Context, title string) (*board.Board, error)
	Get(ctx context.Context, id string) (*board.Board, error)
	GetTree(ctx context.Context, id string) (*board.Tree, error)
	UpdateTitle(ctx context.Context, id, title string) (*board.Board, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context, id string) (string, error)
}

// ListService defines list operations needed by MCP.
type ListService interface {
	Create(ctx context.Context, req list.CreateRequest) (*list.List, error)
	Get(ctx context.Context, id string) (*list.List, error)
	GetWithCards(ctx context.Context, id string) (*list.WithCards, error)
	UpdateTitle(ctx context.Context, id, title string) (*list.List, error)
	Move(ctx context.Context, id string, req list.MoveRequest) (*list.List, error)
	Delete(ctx context.Context, id string) error
}

// CardService defines card operations needed by MCP.
type CardService interface {
	Create(ctx context.Context, req card.CreateRequest) (*card.Card, error)
	Get(ctx context.Context, id string) (*card.Card, error)
	Update(ctx context.Context, id string, req card.UpdateRequest) (*card.Card, error)
	Move(ctx context.Context, id string, req card.MoveRequest) (*card.Card, error)
	Delete(ctx context.Context, id string) error
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Boards   BoardService
	Lists    ListService
	Cards    CardService
	Activity ActivityService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "kanbee",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, &toolSet{svc: cfg.Services, logger: logger})

	return server
}
