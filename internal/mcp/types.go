package mcp

import (
	"fmt"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
)

// ProjectFilterParams are the filter and sort arguments shared by list_projects and get_project_tree.
type ProjectFilterParams struct {
	Search         string             `json:"search,omitempty"`
	Status         []project.Status   `json:"status,omitempty"`
	Type           []project.Type     `json:"type,omitempty"`
	Priority       []project.Priority `json:"priority,omitempty"`
	InterlocutorID string             `json:"interlocutor_id,omitempty"`
	CreatedBy      string             `json:"created_by,omitempty"`
	CreatedFrom    string             `json:"created_from,omitempty"`
	CreatedTo      string             `json:"created_to,omitempty"`
	Tags           []string           `json:"tags,omitempty"`
	HasItems       *bool              `json:"has_items,omitempty"`
	HasFiles       *bool              `json:"has_files,omitempty"`
}

type CreateProjectParams struct {
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Type           project.Type     `json:"type,omitempty"`
	Status         project.Status   `json:"status,omitempty"`
	Priority       project.Priority `json:"priority,omitempty"`
	ParentID       *string          `json:"parent_id,omitempty"`
	InterlocutorID *string          `json:"interlocutor_id,omitempty"`
	Tags           []project.Tag    `json:"tags,omitempty"`
	Members        []project.Member `json:"members,omitempty"`
	Items          []project.Item   `json:"items,omitempty"`
	Files          []project.File   `json:"files,omitempty"`
	StartDate      string           `json:"start_date,omitempty"`
	EndDate        string           `json:"end_date,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type ListProjectsParams struct {
	ProjectFilterParams
	SortBy        project.SortField     `json:"sort_by,omitempty"`
	SortDirection project.SortDirection `json:"sort_direction,omitempty"`
}

type UpdateProjectParams struct {
	ID             string            `json:"id"`
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Type           *project.Type     `json:"type,omitempty"`
	Status         *project.Status   `json:"status,omitempty"`
	Priority       *project.Priority `json:"priority,omitempty"`
	InterlocutorID *string           `json:"interlocutor_id,omitempty"`
	Tags           *[]project.Tag    `json:"tags,omitempty"`
	Members        *[]project.Member `json:"members,omitempty"`
	Items          *[]project.Item   `json:"items,omitempty"`
	Files          *[]project.File   `json:"files,omitempty"`
	StartDate      *string           `json:"start_date,omitempty"`
	EndDate        *string           `json:"end_date,omitempty"`
}

type DeleteProjectParams struct {
	ID string `json:"id"`
}

type MoveProjectParams struct {
	SourceID  string                `json:"source_id"`
	TargetID  string                `json:"target_id"`
	Operation project.MoveOperation `json:"operation"`
}

type GetProjectTreeParams struct {
	ProjectFilterParams
}

type GetProjectNavigationParams struct {
	ID string `json:"id"`
}

type AddProjectItemParams struct {
	ProjectID   string             `json:"project_id"`
	Type        project.ItemType   `json:"type,omitempty"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Status      project.ItemStatus `json:"status,omitempty"`
	Metadata    map[string]any     `json:"metadata,omitempty"`
}

type RemoveProjectItemParams struct {
	ProjectID string `json:"project_id"`
	ItemID    string `json:"item_id"`
}

type SearchProjectsParams struct {
	Query string `json:"query"`
}

type GetRecentActivityParams struct {
	ProjectID string   `json:"project_id,omitempty"`
	Types     []string `json:"types,omitempty"`
	Limit     int      `json:"limit,omitempty"`
}

// DeleteResponse acknowledges a removal.
type DeleteResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ProjectListResponse wraps a project listing with its size.
type ProjectListResponse struct {
	Projects []project.Project `json:"projects"`
	Total    int               `json:"total"`
}

// Filter converts the arguments into a domain filter. An empty argument set yields nil.
func (p ProjectFilterParams) Filter() (*project.Filter, error) {
	f := &project.Filter{
		Search:         p.Search,
		Status:         p.Status,
		Type:           p.Type,
		Priority:       p.Priority,
		InterlocutorID: p.InterlocutorID,
		CreatedBy:      p.CreatedBy,
		Tags:           p.Tags,
		HasItems:       p.HasItems,
		HasFiles:       p.HasFiles,
	}
	if p.CreatedFrom != "" || p.CreatedTo != "" {
		r := &project.DateRange{End: maxTime}
		if p.CreatedFrom != "" {
			start, err := ParseTime(p.CreatedFrom)
			if err != nil {
				return nil, err
			}
			r.Start = start
		}
		if p.CreatedTo != "" {
			end, err := ParseTime(p.CreatedTo)
			if err != nil {
				return nil, err
			}
			r.End = end
		}
		f.DateRange = r
	}
	if p.empty() {
		return nil, nil
	}
	return f, nil
}

func (p ProjectFilterParams) empty() bool {
	return p.Search == "" && len(p.Status) == 0 && len(p.Type) == 0 && len(p.Priority) == 0 &&
		p.InterlocutorID == "" && p.CreatedBy == "" && p.CreatedFrom == "" && p.CreatedTo == "" &&
		len(p.Tags) == 0 && p.HasItems == nil && p.HasFiles == nil
}

var maxTime = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)

// ParseTime accepts RFC 3339 timestamps or plain dates (YYYY-MM-DD, midnight UTC).
func ParseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", project.ErrInvalidInput, s)
	}
	return t, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
