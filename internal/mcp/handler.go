package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	List(ctx context.Context, f *project.Filter, sortOpts *project.SortOptions) []project.Project
	Update(ctx context.Context, id string, req project.UpdateRequest) (*project.Project, error)
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, sourceID, targetID string, op project.MoveOperation) (*project.Project, error)
	GetTree(ctx context.Context, f *project.Filter) []*project.TreeNode
	GetNavigation(ctx context.Context, id string) (*project.Navigation, error)
	GetStatistics(ctx context.Context) project.Statistics
	AddItem(ctx context.Context, projectID string, in project.ItemInput) (*project.Item, error)
	RemoveItem(ctx context.Context, projectID, itemID string) error
	Search(ctx context.Context, query string) []project.Project
	RecentActivity(ctx context.Context, opts activity.ListOptions) []activity.RecentEntry
}

// Handler dispatches MCP tool calls.
type Handler struct {
	projects ProjectService
}

// NewHandler creates a new MCP handler.
func NewHandler(projects ProjectService) *Handler {
	return &Handler{projects: projects}
}

// Handle dispatches a tool call to the project service.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "create_project":
		var req CreateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		start, err := parseOptionalTime(req.StartDate)
		if err != nil {
			return nil, mapError(err)
		}
		end, err := parseOptionalTime(req.EndDate)
		if err != nil {
			return nil, mapError(err)
		}
		proj, err := h.projects.Create(ctx, project.CreateRequest{
			Name:           req.Name,
			Description:    req.Description,
			Type:           req.Type,
			Status:         req.Status,
			Priority:       req.Priority,
			ParentID:       req.ParentID,
			InterlocutorID: req.InterlocutorID,
			Tags:           req.Tags,
			Members:        req.Members,
			Items:          req.Items,
			Files:          req.Files,
			StartDate:      start,
			EndDate:        end,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		filter, err := req.Filter()
		if err != nil {
			return nil, mapError(err)
		}
		var sortOpts *project.SortOptions
		if req.SortBy != "" {
			sortOpts = &project.SortOptions{Field: req.SortBy, Direction: req.SortDirection}
		}
		projects := h.projects.List(ctx, filter, sortOpts)
		return ProjectListResponse{Projects: projects, Total: len(projects)}, nil
	case "update_project":
		var req UpdateProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		update := project.UpdateRequest{
			Name:           req.Name,
			Description:    req.Description,
			Type:           req.Type,
			Status:         req.Status,
			Priority:       req.Priority,
			InterlocutorID: req.InterlocutorID,
			Tags:           req.Tags,
			Members:        req.Members,
			Items:          req.Items,
			Files:          req.Files,
		}
		var err error
		if req.StartDate != nil {
			if update.StartDate, err = parseOptionalTime(*req.StartDate); err != nil {
				return nil, mapError(err)
			}
		}
		if req.EndDate != nil {
			if update.EndDate, err = parseOptionalTime(*req.EndDate); err != nil {
				return nil, mapError(err)
			}
		}
		proj, err := h.projects.Update(ctx, req.ID, update)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "delete_project":
		var req DeleteProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.projects.Delete(ctx, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{ID: req.ID, Deleted: true}, nil
	case "move_project":
		var req MoveProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		proj, err := h.projects.Move(ctx, req.SourceID, req.TargetID, req.Operation)
		if err != nil {
			return nil, mapError(err)
		}
		return proj, nil
	case "get_project_tree":
		var req GetProjectTreeParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		filter, err := req.Filter()
		if err != nil {
			return nil, mapError(err)
		}
		return h.projects.GetTree(ctx, filter), nil
	case "get_project_navigation":
		var req GetProjectNavigationParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		nav, err := h.projects.GetNavigation(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return nav, nil
	case "get_project_statistics":
		return h.projects.GetStatistics(ctx), nil
	case "add_project_item":
		var req AddProjectItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		item, err := h.projects.AddItem(ctx, req.ProjectID, project.ItemInput{
			Type:        req.Type,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
			Metadata:    req.Metadata,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return item, nil
	case "remove_project_item":
		var req RemoveProjectItemParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.projects.RemoveItem(ctx, req.ProjectID, req.ItemID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{ID: req.ItemID, Deleted: true}, nil
	case "search_projects":
		var req SearchProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		projects := h.projects.Search(ctx, req.Query)
		return ProjectListResponse{Projects: projects, Total: len(projects)}, nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListOptions{
			ProjectID: req.ProjectID,
			Limit:     req.Limit,
		}
		for _, t := range req.Types {
			opts.Types = append(opts.Types, activity.Type(t))
		}
		return h.projects.RecentActivity(ctx, opts), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_ARGUMENTS", Message: err.Error(), RecoveryHint: "Check argument names and types against the tool schema"}
	}
	return nil
}
