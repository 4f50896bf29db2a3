package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	BoardID      string
	ListID       *string
	CardID       *string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
