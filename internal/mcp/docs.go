package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `kanbee stores boards of ordered lists of ordered cards.

Model:
- Board: top-level container. Lists live on exactly one board.
- List: ordered inside its board, and a container for cards.
- Card: ordered inside its list.
- Positions are zero-based and always dense: a container with N children uses exactly 0..N-1.

Working with positions:
1) Read first: get_board with include_children=true returns every list and card in order.
2) Insert: create_list / create_card take an optional position. Omit it (or pass anything past the end) to append.
3) Move: move_list / move_card take a target position, clamped to the last slot. Give board_id / list_id to move across containers.
4) Delete: siblings after the removed item shift back by one.
5) Positions of other items change after every mutation; re-read before reasoning about indexes.

Docs:
- kanbee://docs/index
- kanbee://docs/positions
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "kanbee://docs/index",
		Name:        "docs_index",
		Title:       "kanbee docs index",
		Description: "Entry point: tool overview and what to read next.",
		Content: `# kanbee: Agent Docs Index

## Tools

| tool | use |
|---|---|
| create_board, get_board, rename_board, delete_board | board lifecycle |
| create_list, get_list, rename_list, move_list, delete_list | lists on a board |
| create_card, get_card, update_card, move_card, delete_card | cards in a list |
| export_board | JSON snapshot of a board tree to object storage |
| recent_activity | change log for a board |

## Errors

Failed tool calls return ` + "`isError: true`" + ` with a JSON body:

` + "```json" + `
{"code": "LIST_NOT_FOUND", "message": "list not found", "recovery_hint": "..."}
` + "```" + `

Codes: BOARD_NOT_FOUND, LIST_NOT_FOUND, CARD_NOT_FOUND, SNAPSHOT_NOT_FOUND,
SNAPSHOTS_DISABLED, INVALID_INPUT, CONFLICT, INTERNAL.

Read kanbee://docs/positions before moving items.
`,
	},
	{
		URI:         "kanbee://docs/positions",
		Name:        "docs_positions",
		Title:       "Position semantics",
		Description: "How insert, move and delete renumber siblings.",
		Content: `# Positions

Every container keeps its children at positions 0..N-1 with no gaps or duplicates.

## Insert at p

Children at p and above shift up by one; the new item takes p.
A missing p, or any p >= N, appends at N. Negative p is rejected with INVALID_INPUT.

## Move within a container from a to b

b is clamped to N-1.
- a < b: children in (a, b] shift down by one.
- a > b: children in [b, a) shift up by one.
- a == b: nothing changes.

## Move across containers

The source closes the gap: every child after the old slot shifts down by one.
The target opens a slot exactly like an insert (the target may be empty).

## Delete

Every child after the removed item shifts down by one.

## Example

Cards [A, B, C, D], move B (1) to 3: result [A, C, D, B].
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
