package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `multisite-projects stores a forest of projects (insurance files, contracts, audits...) and their work items.

Core concepts:
- Project: a node in a tree. parentId links it to its parent; children, path and level are derived and always consistent.
- Root: a project without parent. Roots have an explicit order.
- Item: a typed artifact attached to a project (quote, contract, claim, document, task, note).
- Activity: an append-only log entry per project (created, updated, deleted, moved).

Default workflow:
1) Orient: get_project_tree or get_project_statistics.
2) Find: search_projects (free text) or list_projects (structured filters + sort).
3) Inspect: get_project, get_project_navigation for breadcrumbs and siblings.
4) Change: create_project, update_project, add_project_item / remove_project_item.
5) Restructure: move_project (move_into, move_before, move_after). Moving a project under itself or a descendant is rejected.
6) delete_project removes the whole subtree.

Attribution: pass the acting user via the X-Actor-Id header (HTTP) or _meta.actor_id (stdio).

Docs:
- projects://docs/concepts
- projects://docs/moving
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "projects://docs/concepts",
		Name:        "docs_concepts",
		Title:       "Project tree concepts",
		Description: "Hierarchy fields, counters, filters and statistics.",
		Content: `# Project tree concepts

## Hierarchy

- ` + "`parentId`" + ` is the source of truth. ` + "`children`" + ` lists the direct children in display order.
- ` + "`path`" + ` holds ancestor ids from the root down to the parent; ` + "`level`" + ` is its length.
- A root has an empty path and level 0.

## Counters

` + "`totalItems`" + `, ` + "`completedItems`" + `, ` + "`totalFiles`" + ` and ` + "`totalSize`" + ` mirror the items and files of the project.
They are recomputed on every change; never send them.

## Filters

Every filter given must match (AND). List filters (status, type, priority) are allow-lists.
` + "`tags`" + ` matches when the project carries any of the tag ids. Dates are inclusive.
In ` + "`get_project_tree`" + `, a project whose parent does not match is left out of the tree.

## Statistics

Average completion time counts only completed projects with both start and end dates,
each rounded up to whole days. Recent activity is the 10 newest entries across all projects.
`,
	},
	{
		URI:         "projects://docs/moving",
		Name:        "docs_moving",
		Title:       "Moving projects",
		Description: "Semantics of move_into, move_before and move_after.",
		Content: `# Moving projects

- ` + "`move_into`" + `: target becomes the parent; source is appended to target's children.
- ` + "`move_before`" + ` / ` + "`move_after`" + `: source becomes a sibling of target, placed just before or after it.
  When target is a root, source becomes a root at that position.

The whole moved subtree gets its path and level recomputed.
A move whose target is the source itself or one of its descendants fails with CYCLIC_MOVE and changes nothing.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
