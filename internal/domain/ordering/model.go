package ordering

// Placement locates an item inside its container.
type Placement struct {
	ItemID      string `json:"item_id"`
	ContainerID string `json:"container_id"`
	Position    int    `json:"position"`
}
