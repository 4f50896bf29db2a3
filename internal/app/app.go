// Package app wires repositories, services and transports into one server.
package app

import (
	"log/slog"
	"net/http"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/board"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
	"github.com/rpggio/kanbee/internal/mcp"
	"github.com/rpggio/kanbee/internal/sqlite"
	"github.com/rpggio/kanbee/internal/transport"
)

// Version is reported to MCP clients.
var Version = "0.1.0"

const mcpSessionTimeout = 30 * time.Minute

// App holds the wired services of a running server.
type App struct {
	DB       *sqlite.DB
	Services transport.Services
	MCP      *sdkmcp.Server
	logger   *slog.Logger
}

// New builds services over db. A nil snapshots store disables export.
func New(db *sqlite.DB, snapshots board.SnapshotStore, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	boardRepo := sqlite.NewBoardRepository(db)
	listRepo := sqlite.NewListRepository(db)
	cardRepo := sqlite.NewCardRepository(db)
	activities := activity.NewService(sqlite.NewActivityRepository(db), logger)

	services := transport.Services{
		Boards:   board.NewService(boardRepo, listRepo, cardRepo, snapshots, activities, logger),
		Lists:    list.NewService(listRepo, cardRepo, activities, logger),
		Cards:    card.NewService(cardRepo, activities, logger),
		Activity: activities,
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Boards:   services.Boards,
			Lists:    services.Lists,
			Cards:    services.Cards,
			Activity: services.Activity,
		},
		Version: Version,
		Logger:  logger,
	})

	return &App{DB: db, Services: services, MCP: mcpServer, logger: logger}
}

// Handler serves the REST API, health checks and MCP over streamable HTTP at /mcp.
func (a *App) Handler() http.Handler {
	router := transport.NewServer(a.Services, a.DB, a.logger)

	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return a.MCP },
		&sdkmcp.StreamableHTTPOptions{
			Stateless:      false,
			SessionTimeout: mcpSessionTimeout,
		},
	)
	router.Handle("/mcp", mcpHandler)
	router.Handle("/mcp/*", mcpHandler)
	return router
}
