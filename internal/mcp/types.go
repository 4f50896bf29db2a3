package mcp

import "github.com/rpggio/kanbee/internal/domain/activity"

type CreateBoardParams struct {
	Title string `json:"title" jsonschema:"Board title, 1 to 255 characters"`
}

type GetBoardParams struct {
	ID              string `json:"id"`
	IncludeChildren bool   `json:"include_children,omitempty" jsonschema:"Return lists and cards ordered by position"`
}

type RenameParams struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type IDParams struct {
	ID string `json:"id"`
}

type CreateListParams struct {
	BoardID  string `json:"board_id"`
	Title    string `json:"title"`
	Position *int   `json:"position,omitempty" jsonschema:"Zero-based slot; omitted or past the end appends"`
}

type GetListParams struct {
	ID           string `json:"id"`
	IncludeCards bool   `json:"include_cards,omitempty"`
}

type MoveListParams struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id,omitempty" jsonschema:"Target board; omit to reorder within the current board"`
	Position int    `json:"position" jsonschema:"Zero-based target slot, clamped to the end"`
}

type CreateCardParams struct {
	ListID      string  `json:"list_id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Position    *int    `json:"position,omitempty" jsonschema:"Zero-based slot; omitted or past the end appends"`
}

type UpdateCardParams struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

type MoveCardParams struct {
	ID       string `json:"id"`
	ListID   string `json:"list_id,omitempty" jsonschema:"Target list; omit to reorder within the current list"`
	Position int    `json:"position" jsonschema:"Zero-based target slot, clamped to the end"`
}

type RecentActivityParams struct {
	BoardID string                 `json:"board_id"`
	ListID  *string                `json:"list_id,omitempty"`
	CardID  *string                `json:"card_id,omitempty"`
	Type    *activity.ActivityType `json:"type,omitempty"`
	Limit   int                    `json:"limit,omitempty"`
	Offset  int                    `json:"offset,omitempty"`
}

type DeletedResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type ExportResult struct {
	BoardID  string `json:"board_id"`
	Location string `json:"location"`
}

type ActivityResult struct {
	Entries []activity.ActivityEntry `json:"entries"`
}
