package list

import (
	"time"

	"github.com/rpggio/kanbee/internal/domain/card"
)

// List is an item ordered inside a board and a container for cards.
type List struct {
	ID        string    `json:"id"`
	BoardID   string    `json:"board_id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WithCards is a list together with its cards in position order.
type WithCards struct {
	List
	Cards []card.Card `json:"cards"`
}
