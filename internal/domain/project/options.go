package project

import "time"

// MoveOperation places a project relative to a target project
type MoveOperation string

const (
	MoveInto   MoveOperation = "move_into"
	MoveBefore MoveOperation = "move_before"
	MoveAfter  MoveOperation = "move_after"
)

// Valid reports whether op is a known move operation.
func (op MoveOperation) Valid() bool {
	switch op {
	case MoveInto, MoveBefore, MoveAfter:
		return true
	}
	return false
}

// DateRange bounds createdAt, both ends inclusive
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Filter selects projects; every non-empty criterion must match.
type Filter struct {
	Search         string     `json:"search,omitempty"`
	Status         []Status   `json:"status,omitempty"`
	Type           []Type     `json:"type,omitempty"`
	Priority       []Priority `json:"priority,omitempty"`
	InterlocutorID string     `json:"interlocutorId,omitempty"`
	CreatedBy      string     `json:"createdBy,omitempty"`
	DateRange      *DateRange `json:"dateRange,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	HasItems       *bool      `json:"hasItems,omitempty"`
	HasFiles       *bool      `json:"hasFiles,omitempty"`
}

// SortField names a sortable project attribute
type SortField string

const (
	SortByName         SortField = "name"
	SortByCreatedAt    SortField = "createdAt"
	SortByUpdatedAt    SortField = "updatedAt"
	SortByLastActivity SortField = "lastActivity"
	SortByPriority     SortField = "priority"
	SortByStatus       SortField = "status"
	SortByTotalItems   SortField = "totalItems"
)

// SortDirection is asc or desc
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortOptions orders a project listing.
type SortOptions struct {
	Field     SortField     `json:"field"`
	Direction SortDirection `json:"direction"`
}
