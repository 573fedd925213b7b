package activity

// ListOptions provides filtering options for recent activity.
type ListOptions struct {
	ProjectID string
	Types     []Type
	Limit     int
}

// DefaultRecentLimit is the number of entries kept when no limit is given.
const DefaultRecentLimit = 10
