package project

import (
	"maps"
	"slices"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
)

// Type is the business domain a project belongs to
type Type string

const (
	TypeInsurance  Type = "insurance"
	TypeFinance    Type = "finance"
	TypeLegal      Type = "legal"
	TypeCommercial Type = "commercial"
	TypeTechnical  Type = "technical"
	TypeOther      Type = "other"
)

// Types lists every project type.
var Types = []Type{TypeInsurance, TypeFinance, TypeLegal, TypeCommercial, TypeTechnical, TypeOther}

// Status represents the lifecycle state of a project
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every project status.
var Statuses = []Status{StatusDraft, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled}

// Priority ranks projects for triage
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Rank orders priorities from low (1) to urgent (4); unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// ItemType is the kind of work artifact attached to a project
type ItemType string

const (
	ItemQuote    ItemType = "quote"
	ItemContract ItemType = "contract"
	ItemClaim    ItemType = "claim"
	ItemDocument ItemType = "document"
	ItemTask     ItemType = "task"
	ItemNote     ItemType = "note"
	ItemOther    ItemType = "other"
)

// ItemStatus is the progress state of a project item
type ItemStatus string

const (
	ItemPending    ItemStatus = "pending"
	ItemInProgress ItemStatus = "in_progress"
	ItemCompleted  ItemStatus = "completed"
	ItemCancelled  ItemStatus = "cancelled"
)

// Item is a typed work artifact (quote, contract, ...) tracked inside a project
type Item struct {
	ID          string         `json:"id"`
	Type        ItemType       `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      ItemStatus     `json:"status"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedBy   string         `json:"createdBy,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// File is an attachment stored against a project
type File struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	MimeType   string    `json:"mimeType,omitempty"`
	Size       int64     `json:"size"`
	URL        string    `json:"url,omitempty"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// Tag is a labelled colour attached to projects
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Member is a user taking part in a project
type Member struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// Project is a node in a forest of hierarchical work units.
//
// Children, Path and Level are denormalised from ParentID and are kept
// consistent by the Service; the counters mirror Items and Files.
type Project struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Type           Type             `json:"type"`
	Status         Status           `json:"status"`
	Priority       Priority         `json:"priority"`
	ParentID       *string          `json:"parentId,omitempty"`
	Children       []string         `json:"children"`
	Path           []string         `json:"path"`
	Level          int              `json:"level"`
	InterlocutorID *string          `json:"interlocutorId,omitempty"`
	Tags           []Tag            `json:"tags"`
	Members        []Member         `json:"members"`
	Items          []Item           `json:"items"`
	Files          []File           `json:"files"`
	TotalItems     int              `json:"totalItems"`
	CompletedItems int              `json:"completedItems"`
	TotalFiles     int              `json:"totalFiles"`
	TotalSize      int64            `json:"totalSize"`
	Activities     []activity.Entry `json:"activities"`
	StartDate      *time.Time       `json:"startDate,omitempty"`
	EndDate        *time.Time       `json:"endDate,omitempty"`
	CreatedBy      string           `json:"createdBy"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	LastActivity   time.Time        `json:"lastActivity"`
}

// IsRoot reports whether the project has no parent.
func (p *Project) IsRoot() bool {
	return p.ParentID == nil
}

// Clone returns a deep copy so callers cannot reach stored state.
func (p *Project) Clone() Project {
	c := *p
	c.ParentID = clonePtr(p.ParentID)
	c.InterlocutorID = clonePtr(p.InterlocutorID)
	c.StartDate = clonePtr(p.StartDate)
	c.EndDate = clonePtr(p.EndDate)
	c.Children = cloneSlice(p.Children)
	c.Path = cloneSlice(p.Path)
	c.Tags = cloneSlice(p.Tags)
	c.Files = cloneSlice(p.Files)

	c.Members = cloneSlice(p.Members)
	for i := range c.Members {
		c.Members[i].Permissions = slices.Clone(c.Members[i].Permissions)
	}
	c.Items = cloneSlice(p.Items)
	for i := range c.Items {
		c.Items[i].Metadata = maps.Clone(c.Items[i].Metadata)
	}
	c.Activities = cloneSlice(p.Activities)
	for i := range c.Activities {
		c.Activities[i].Metadata = maps.Clone(c.Activities[i].Metadata)
	}
	return c
}

// cloneSlice copies s, keeping an empty (non-nil) slice for JSON stability.
func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// TreeNode is a project materialised with its nested children
type TreeNode struct {
	Project    Project     `json:"project"`
	Children   []*TreeNode `json:"children"`
	IsExpanded bool        `json:"isExpanded"`
	IsSelected bool        `json:"isSelected"`
}

// Breadcrumb is one step of the ancestry shown above a project
type Breadcrumb struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
}

// Navigation describes a project's position in the forest
type Navigation struct {
	Breadcrumbs []Breadcrumb `json:"breadcrumbs"`
	Siblings    []Project    `json:"siblings"`
	Parent      *Project     `json:"parent,omitempty"`
	Children    []Project    `json:"children"`
}

// Statistics is an aggregate snapshot over every stored project
type Statistics struct {
	TotalProjects         int                    `json:"totalProjects"`
	ActiveProjects        int                    `json:"activeProjects"`
	CompletedProjects     int                    `json:"completedProjects"`
	TotalItems            int                    `json:"totalItems"`
	TotalFiles            int                    `json:"totalFiles"`
	TotalSize             int64                  `json:"totalSize"`
	AverageCompletionDays float64                `json:"averageCompletionTime"`
	ProjectsByType        map[Type]int           `json:"projectsByType"`
	ProjectsByStatus      map[Status]int         `json:"projectsByStatus"`
	RecentActivity        []activity.RecentEntry `json:"recentActivity"`
}
