package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeBoardCreated  ActivityType = "board_created"
	TypeBoardRenamed  ActivityType = "board_renamed"
	TypeBoardDeleted  ActivityType = "board_deleted"
	TypeBoardExported ActivityType = "board_exported"
	TypeListCreated   ActivityType = "list_created"
	TypeListRenamed   ActivityType = "list_renamed"
	TypeListMoved     ActivityType = "list_moved"
	TypeListDeleted   ActivityType = "list_deleted"
	TypeCardCreated   ActivityType = "card_created"
	TypeCardUpdated   ActivityType = "card_updated"
	TypeCardMoved     ActivityType = "card_moved"
	TypeCardDeleted   ActivityType = "card_deleted"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	BoardID      string       `json:"board_id"`
	ListID       *string      `json:"list_id,omitempty"`
	CardID       *string      `json:"card_id,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"created_at"`
}
