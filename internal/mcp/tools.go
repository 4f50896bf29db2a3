package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rpggio/kanbee/internal/domain/activity"
	"github.com/rpggio/kanbee/internal/domain/card"
	"github.com/rpggio/kanbee/internal/domain/list"
)

type toolSet struct {
	svc    Services
	logger *slog.Logger
}

func registerTools(server *sdkmcp.Server, t *toolSet) {
	// Boards
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_board",
		Description: "Create an empty board",
	}, t.createBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_board",
		Description: "Get a board, optionally with its lists and cards in position order",
	}, t.getBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_board",
		Description: "Change a board title",
	}, t.renameBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_board",
		Description: "Delete a board with all of its lists and cards",
	}, t.deleteBoard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "export_board",
		Description: "Write a JSON snapshot of the board tree to object storage",
	}, t.exportBoard)

	// Lists
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_list",
		Description: "Insert a list into a board at a position, shifting later lists right",
	}, t.createList)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_list",
		Description: "Get a list, optionally with its cards in position order",
	}, t.getList)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "rename_list",
		Description: "Change a list title",
	}, t.renameList)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_list",
		Description: "Move a list to a position within its board or onto another board",
	}, t.moveList)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_list",
		Description: "Delete a list and its cards, closing the gap it leaves",
	}, t.deleteList)

	// Cards
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_card",
		Description: "Insert a card into a list at a position, shifting later cards down",
	}, t.createCard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_card",
		Description: "Get a card",
	}, t.getCard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_card",
		Description: "Change a card title or description; position is untouched",
	}, t.updateCard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "move_card",
		Description: "Move a card to a position within its list or into another list",
	}, t.moveCard)
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_card",
		Description: "Delete a card, closing the gap it leaves",
	}, t.deleteCard)

	// Activity
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "recent_activity",
		Description: "List recent changes on a board, newest first",
	}, t.recentActivity)
}

func (t *toolSet) createBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateBoardParams) (*sdkmcp.CallToolResult, any, error) {
	b, err := t.svc.Boards.Create(ctx, in.Title)
	return t.result("create_board", b, err)
}

func (t *toolSet) getBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetBoardParams) (*sdkmcp.CallToolResult, any, error) {
	if in.IncludeChildren {
		tree, err := t.svc.Boards.GetTree(ctx, in.ID)
		return t.result("get_board", tree, err)
	}
	b, err := t.svc.Boards.Get(ctx, in.ID)
	return t.result("get_board", b, err)
}

func (t *toolSet) renameBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in RenameParams) (*sdkmcp.CallToolResult, any, error) {
	b, err := t.svc.Boards.UpdateTitle(ctx, in.ID, in.Title)
	return t.result("rename_board", b, err)
}

func (t *toolSet) deleteBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	err := t.svc.Boards.Delete(ctx, in.ID)
	return t.result("delete_board", DeletedResult{ID: in.ID, Deleted: true}, err)
}

func (t *toolSet) exportBoard(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	location, err := t.svc.Boards.Export(ctx, in.ID)
	return t.result("export_board", ExportResult{BoardID: in.ID, Location: location}, err)
}

func (t *toolSet) createList(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateListParams) (*sdkmcp.CallToolResult, any, error) {
	l, err := t.svc.Lists.Create(ctx, list.CreateRequest{
		BoardID:  in.BoardID,
		Title:    in.Title,
		Position: in.Position,
	})
	return t.result("create_list", l, err)
}

func (t *toolSet) getList(ctx context.Context, _ *sdkmcp.CallToolRequest, in GetListParams) (*sdkmcp.CallToolResult, any, error) {
	if in.IncludeCards {
		l, err := t.svc.Lists.GetWithCards(ctx, in.ID)
		return t.result("get_list", l, err)
	}
	l, err := t.svc.Lists.Get(ctx, in.ID)
	return t.result("get_list", l, err)
}

func (t *toolSet) renameList(ctx context.Context, _ *sdkmcp.CallToolRequest, in RenameParams) (*sdkmcp.CallToolResult, any, error) {
	l, err := t.svc.Lists.UpdateTitle(ctx, in.ID, in.Title)
	return t.result("rename_list", l, err)
}

func (t *toolSet) moveList(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveListParams) (*sdkmcp.CallToolResult, any, error) {
	l, err := t.svc.Lists.Move(ctx, in.ID, list.MoveRequest{BoardID: in.BoardID, Position: in.Position})
	return t.result("move_list", l, err)
}

func (t *toolSet) deleteList(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	err := t.svc.Lists.Delete(ctx, in.ID)
	return t.result("delete_list", DeletedResult{ID: in.ID, Deleted: true}, err)
}

func (t *toolSet) createCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in CreateCardParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.svc.Cards.Create(ctx, card.CreateRequest{
		ListID:      in.ListID,
		Title:       in.Title,
		Description: in.Description,
		Position:    in.Position,
	})
	return t.result("create_card", c, err)
}

func (t *toolSet) getCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.svc.Cards.Get(ctx, in.ID)
	return t.result("get_card", c, err)
}

func (t *toolSet) updateCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in UpdateCardParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.svc.Cards.Update(ctx, in.ID, card.UpdateRequest{Title: in.Title, Description: in.Description})
	return t.result("update_card", c, err)
}

func (t *toolSet) moveCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in MoveCardParams) (*sdkmcp.CallToolResult, any, error) {
	c, err := t.svc.Cards.Move(ctx, in.ID, card.MoveRequest{ListID: in.ListID, Position: in.Position})
	return t.result("move_card", c, err)
}

func (t *toolSet) deleteCard(ctx context.Context, _ *sdkmcp.CallToolRequest, in IDParams) (*sdkmcp.CallToolResult, any, error) {
	err := t.svc.Cards.Delete(ctx, in.ID)
	return t.result("delete_card", DeletedResult{ID: in.ID, Deleted: true}, err)
}

func (t *toolSet) recentActivity(ctx context.Context, _ *sdkmcp.CallToolRequest, in RecentActivityParams) (*sdkmcp.CallToolResult, any, error) {
	entries, err := t.svc.Activity.GetRecentActivity(ctx, activity.ListActivityOptions{
		BoardID:      in.BoardID,
		ListID:       in.ListID,
		CardID:       in.CardID,
		ActivityType: in.Type,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if entries == nil {
		entries = []activity.ActivityEntry{}
	}
	return t.result("recent_activity", ActivityResult{Entries: entries}, err)
}

// result renders a tool outcome as JSON text. Domain errors become an
// APIError payload flagged IsError; anything else is logged and reported
// as INTERNAL.
func (t *toolSet) result(tool string, value any, err error) (*sdkmcp.CallToolResult, any, error) {
	if err != nil {
		apiErr := MapError(err)
		if apiErr == nil {
			t.logger.Error("tool failed", "tool", tool, "error", err)
			apiErr = &APIError{Code: "INTERNAL", Message: "operation failed"}
		}
		return &sdkmcp.CallToolResult{
			IsError: true,
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: marshal(apiErr)}},
		}, nil, nil
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: marshal(value)}},
	}, nil, nil
}

func marshal(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return `{"code":"INTERNAL","message":"unencodable result"}`
	}
	return string(data)
}
