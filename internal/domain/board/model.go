package board

import (
	"time"

	"github.com/rpggio/kanbee/internal/domain/list"
)

// Board is the top-level container of lists.
type Board struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tree is a board with its lists and their cards, each level ordered by position.
type Tree struct {
	Board
	Lists []list.WithCards `json:"lists"`
}
