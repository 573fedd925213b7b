package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

func stringProp(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func enumArrayProp[T ~string](description string, values []T) map[string]any {
	enum := make([]string, 0, len(values))
	for _, v := range values {
		enum = append(enum, string(v))
	}
	return map[string]any{
		"type":        "array",
		"description": description,
		"items":       map[string]any{"type": "string", "enum": enum},
	}
}

func objectSchema(props map[string]any, required ...string) map[string]any {
	schema := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func filterProps() map[string]any {
	return map[string]any{
		"search":          stringProp("Case-insensitive text matched against name, description and item titles"),
		"status":          enumArrayProp("Allowed statuses", project.Statuses),
		"type":            enumArrayProp("Allowed project types", project.Types),
		"priority":        enumArrayProp("Allowed priorities", []project.Priority{project.PriorityLow, project.PriorityMedium, project.PriorityHigh, project.PriorityUrgent}),
		"interlocutor_id": stringProp("Only projects linked to this interlocutor"),
		"created_by":      stringProp("Only projects created by this user"),
		"created_from":    stringProp("Created on or after (RFC 3339 or YYYY-MM-DD)"),
		"created_to":      stringProp("Created on or before (RFC 3339 or YYYY-MM-DD)"),
		"tags": map[string]any{
			"type":        "array",
			"description": "Tag IDs; a project matches when it carries any of them",
			"items":       map[string]any{"type": "string"},
		},
		"has_items": map[string]any{"type": "boolean", "description": "Require (true) or exclude (false) projects with items"},
		"has_files": map[string]any{"type": "boolean", "description": "Require (true) or exclude (false) projects with files"},
	}
}

func projectFieldProps() map[string]any {
	return map[string]any{
		"name":            stringProp("Project display name"),
		"description":     stringProp("Project description"),
		"type":            map[string]any{"type": "string", "enum": project.Types},
		"status":          map[string]any{"type": "string", "enum": project.Statuses},
		"priority":        map[string]any{"type": "string", "enum": []project.Priority{project.PriorityLow, project.PriorityMedium, project.PriorityHigh, project.PriorityUrgent}},
		"interlocutor_id": stringProp("Linked interlocutor (client, insurer...)"),
		"tags":            map[string]any{"type": "array", "description": "Tags as {id, name, color}", "items": map[string]any{"type": "object"}},
		"members":         map[string]any{"type": "array", "description": "Members as {userId, name, role, permissions, joinedAt}", "items": map[string]any{"type": "object"}},
		"items":           map[string]any{"type": "array", "description": "Items as {type, title, description, status, metadata}", "items": map[string]any{"type": "object"}},
		"files":           map[string]any{"type": "array", "description": "Files as {name, mimeType, size, url}", "items": map[string]any{"type": "object"}},
		"start_date":      stringProp("Start date (RFC 3339 or YYYY-MM-DD)"),
		"end_date":        stringProp("End date (RFC 3339 or YYYY-MM-DD)"),
	}
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	createProps := projectFieldProps()
	createProps["parent_id"] = stringProp("Parent project ID; omit to create a root project")

	updateProps := projectFieldProps()
	updateProps["id"] = stringProp("Project ID")

	listProps := filterProps()
	listProps["sort_by"] = map[string]any{
		"type": "string",
		"enum": []project.SortField{
			project.SortByName, project.SortByCreatedAt, project.SortByUpdatedAt, project.SortByLastActivity,
			project.SortByPriority, project.SortByStatus, project.SortByTotalItems,
		},
		"description": "Sort key; insertion order when omitted",
	}
	listProps["sort_direction"] = map[string]any{"type": "string", "enum": []project.SortDirection{project.SortAsc, project.SortDesc}}

	readOnly := map[string]any{"readOnlyHint": true}
	destructive := map[string]any{"destructiveHint": true}

	return []ToolDefinition{
		{
			Name:        "create_project",
			Description: "Create a project, optionally under a parent project",
			InputSchema: objectSchema(createProps, "name"),
		},
		{
			Name:        "get_project",
			Description: "Get a project with its items, files, members and activity log",
			InputSchema: objectSchema(map[string]any{"id": stringProp("Project ID")}, "id"),
			Annotations: readOnly,
		},
		{
			Name:        "list_projects",
			Description: "List projects matching every given filter, optionally sorted",
			InputSchema: objectSchema(listProps),
			Annotations: readOnly,
		},
		{
			Name:        "update_project",
			Description: "Update descriptive fields of a project; use move_project to change its parent",
			InputSchema: objectSchema(updateProps, "id"),
		},
		{
			Name:        "delete_project",
			Description: "Delete a project and its whole subtree",
			InputSchema: objectSchema(map[string]any{"id": stringProp("Project ID")}, "id"),
			Annotations: destructive,
		},
		{
			Name:        "move_project",
			Description: "Move a project into another project, or before/after a sibling",
			InputSchema: objectSchema(map[string]any{
				"source_id": stringProp("Project to move"),
				"target_id": stringProp("Reference project"),
				"operation": map[string]any{
					"type":        "string",
					"enum":        []project.MoveOperation{project.MoveInto, project.MoveBefore, project.MoveAfter},
					"description": "move_into makes target the parent; move_before/move_after place source next to target",
				},
			}, "source_id", "target_id", "operation"),
		},
		{
			Name:        "get_project_tree",
			Description: "Get the project forest as nested nodes; projects whose parent is filtered out are omitted",
			InputSchema: objectSchema(filterProps()),
			Annotations: readOnly,
		},
		{
			Name:        "get_project_navigation",
			Description: "Get breadcrumbs, parent, siblings and children of a project",
			InputSchema: objectSchema(map[string]any{"id": stringProp("Project ID")}, "id"),
			Annotations: readOnly,
		},
		{
			Name:        "get_project_statistics",
			Description: "Get aggregate counts, completion time and the 10 most recent activities",
			InputSchema: objectSchema(map[string]any{}),
			Annotations: readOnly,
		},
		{
			Name:        "add_project_item",
			Description: "Attach an item (quote, contract, claim, document, task, note) to a project",
			InputSchema: objectSchema(map[string]any{
				"project_id":  stringProp("Project ID"),
				"type":        map[string]any{"type": "string", "enum": []project.ItemType{project.ItemQuote, project.ItemContract, project.ItemClaim, project.ItemDocument, project.ItemTask, project.ItemNote, project.ItemOther}},
				"title":       stringProp("Item title"),
				"description": stringProp("Item description"),
				"status":      map[string]any{"type": "string", "enum": []project.ItemStatus{project.ItemPending, project.ItemInProgress, project.ItemCompleted, project.ItemCancelled}},
				"metadata":    map[string]any{"type": "object", "description": "Free-form item metadata"},
			}, "project_id", "title"),
		},
		{
			Name:        "remove_project_item",
			Description: "Remove an item from a project",
			InputSchema: objectSchema(map[string]any{
				"project_id": stringProp("Project ID"),
				"item_id":    stringProp("Item ID"),
			}, "project_id", "item_id"),
			Annotations: destructive,
		},
		{
			Name:        "search_projects",
			Description: "Search projects by name, description, items, tag names and member names",
			InputSchema: objectSchema(map[string]any{"query": stringProp("Search text")}, "query"),
			Annotations: readOnly,
		},
		{
			Name:        "get_recent_activity",
			Description: "Get recent activity across projects, newest first",
			InputSchema: objectSchema(map[string]any{
				"project_id": stringProp("Only activity of this project"),
				"types": map[string]any{
					"type":        "array",
					"description": "Activity types (created, updated, deleted, moved)",
					"items":       map[string]any{"type": "string"},
				},
				"limit": map[string]any{"type": "integer", "description": "Maximum number of entries (default 10)"},
			}),
			Annotations: readOnly,
		},
	}
}

// registerTools exposes every catalog tool on the server, routed through the handler.
func registerTools(server *sdkmcp.Server, h *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		tool := &sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.Annotations != nil {
			tool.Annotations = toolAnnotations(def.Annotations)
		}
		server.AddTool(tool, toolHandler(h, def.Name, logger))
	}
}

func toolAnnotations(raw map[string]any) *sdkmcp.ToolAnnotations {
	ann := &sdkmcp.ToolAnnotations{}
	if v, ok := raw["readOnlyHint"].(bool); ok {
		ann.ReadOnlyHint = v
	}
	if v, ok := raw["destructiveHint"].(bool); ok {
		ann.DestructiveHint = &v
	}
	return ann
}

func toolHandler(h *Handler, name string, logger *slog.Logger) sdkmcp.ToolHandler {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}

		result, err := h.Handle(ctx, name, args)
		if err != nil {
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				logger.Error("tool call failed", "tool", name, "error", err)
				apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
			}
			return errorResult(apiErr), nil
		}

		data, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode %s result: %w", name, err)
		}
		return &sdkmcp.CallToolResult{
			Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
		}, nil
	}
}

func errorResult(apiErr *APIError) *sdkmcp.CallToolResult {
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
