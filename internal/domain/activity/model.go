package activity

import (
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of change recorded in a project's audit trail
type Type string

const (
	TypeCreated Type = "created"
	TypeUpdated Type = "updated"
	TypeDeleted Type = "deleted"
	TypeMoved   Type = "moved"
)

// Entry is one append-only record in a project's activity log
type Entry struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	Description string            `json:"description"`
	UserID      string            `json:"userId"`
	Timestamp   time.Time         `json:"timestamp"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewEntry builds an entry stamped with a fresh ID.
func NewEntry(typ Type, description, userID string, at time.Time, metadata map[string]string) Entry {
	return Entry{
		ID:          uuid.NewString(),
		Type:        typ,
		Description: description,
		UserID:      userID,
		Timestamp:   at,
		Metadata:    metadata,
	}
}

// RecentEntry is an entry tagged with the project it came from
type RecentEntry struct {
	Entry
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

// Feed is the activity log of a single project.
type Feed struct {
	ProjectID   string
	ProjectName string
	Entries     []Entry
}
