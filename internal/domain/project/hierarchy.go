package project

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
)

// forest holds the stored projects plus the ordering the tree views rely on.
// It is not safe for concurrent use; Service serialises access.
type forest struct {
	byID  map[string]*Project
	order []string // insertion order of every project
	roots []string // ordered root project IDs
}

func newForest() *forest {
	return &forest{byID: make(map[string]*Project)}
}

func (f *forest) add(p *Project) {
	f.byID[p.ID] = p
	f.order = append(f.order, p.ID)
	if p.ParentID == nil {
		f.roots = append(f.roots, p.ID)
	}
}

func (f *forest) parentOf(p *Project) *Project {
	if p.ParentID == nil {
		return nil
	}
	return f.byID[*p.ParentID]
}

// siblingsOf returns the ordered list p belongs to: its parent's children or the root list.
func (f *forest) siblingsOf(p *Project) *[]string {
	if parent := f.parentOf(p); parent != nil {
		return &parent.Children
	}
	return &f.roots
}

// isAncestor reports whether ancestorID appears on p's parent chain.
func (f *forest) isAncestor(ancestorID string, p *Project) bool {
	seen := make(map[string]bool)
	for cur := f.parentOf(p); cur != nil; cur = f.parentOf(cur) {
		if cur.ID == ancestorID {
			return true
		}
		if seen[cur.ID] {
			return false
		}
		seen[cur.ID] = true
	}
	return false
}

// subtree returns id followed by every transitive descendant, depth-first over ParentID.
func (f *forest) subtree(id string) []string {
	byParent := make(map[string][]string)
	for _, pid := range f.order {
		if p := f.byID[pid]; p != nil && p.ParentID != nil {
			byParent[*p.ParentID] = append(byParent[*p.ParentID], pid)
		}
	}

	var out []string
	seen := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		out = append(out, cur)
		kids := byParent[cur]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return out
}

// remove drops the given IDs from the index, the insertion order and the root list.
func (f *forest) remove(ids []string) {
	doomed := make(map[string]bool, len(ids))
	for _, id := range ids {
		doomed[id] = true
		delete(f.byID, id)
	}
	isDoomed := func(id string) bool { return doomed[id] }
	f.order = slices.DeleteFunc(f.order, isDoomed)
	f.roots = slices.DeleteFunc(f.roots, isDoomed)
}

// repairSubtree rewrites Path and Level of id and all its descendants from the
// parent's current ancestry. It visits every node reachable through Children once.
func (f *forest) repairSubtree(id string) {
	start := f.byID[id]
	if start == nil {
		return
	}
	if parent := f.parentOf(start); parent != nil {
		start.Path = append(slices.Clone(parent.Path), parent.ID)
		start.Level = parent.Level + 1
	} else {
		start.Path = []string{}
		start.Level = 0
	}

	seen := map[string]bool{id: true}
	queue := []*Project{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, childID := range cur.Children {
			child := f.byID[childID]
			if child == nil || seen[childID] {
				continue
			}
			seen[childID] = true
			child.Path = append(slices.Clone(cur.Path), cur.ID)
			child.Level = cur.Level + 1
			queue = append(queue, child)
		}
	}
}

// projects returns deep copies of every project in insertion order.
func (f *forest) projects() []Project {
	out := make([]Project, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.byID[id].Clone())
	}
	return out
}

func (f *forest) snapshot() Snapshot {
	return Snapshot{Projects: f.projects(), Roots: slices.Clone(f.roots)}
}

// buildForest indexes loaded projects and re-derives every denormalised field:
// dangling or cyclic parent links become roots, children lists are rebuilt from
// ParentID (keeping any stored order that is still valid), roots follow the stored
// root order, then paths, levels and counters are recomputed. It returns the
// number of repaired links.
func buildForest(snap Snapshot) (*forest, int) {
	f := newForest()
	repaired := 0
	projects := snap.Projects

	for i := range projects {
		p := projects[i].Clone()
		if p.ID == "" {
			repaired++
			continue
		}
		if _, dup := f.byID[p.ID]; dup {
			repaired++
			continue
		}
		f.byID[p.ID] = &p
		f.order = append(f.order, p.ID)
	}

	for _, id := range f.order {
		p := f.byID[id]
		if p.ParentID == nil {
			continue
		}
		if *p.ParentID == "" || *p.ParentID == p.ID || f.byID[*p.ParentID] == nil {
			p.ParentID = nil
			repaired++
		}
	}
	for _, id := range f.order {
		p := f.byID[id]
		if p.ParentID != nil && f.isAncestor(p.ID, p) {
			p.ParentID = nil
			repaired++
		}
	}

	stored := make(map[string][]string, len(f.order))
	byParent := make(map[string][]string)
	var roots []string
	for _, id := range f.order {
		p := f.byID[id]
		stored[id] = p.Children
		p.Children = []string{}
		if p.ParentID == nil {
			roots = append(roots, id)
		} else {
			byParent[*p.ParentID] = append(byParent[*p.ParentID], id)
		}
	}
	for _, id := range snap.Roots {
		if slices.Contains(roots, id) && !slices.Contains(f.roots, id) {
			f.roots = append(f.roots, id)
		}
	}
	for _, id := range roots {
		if !slices.Contains(f.roots, id) {
			f.roots = append(f.roots, id)
			if snap.Roots != nil {
				repaired++
			}
		}
	}
	for parentID, kids := range byParent {
		parent := f.byID[parentID]
		for _, childID := range stored[parentID] {
			if slices.Contains(kids, childID) && !slices.Contains(parent.Children, childID) {
				parent.Children = append(parent.Children, childID)
			}
		}
		for _, childID := range kids {
			if !slices.Contains(parent.Children, childID) {
				parent.Children = append(parent.Children, childID)
				repaired++
			}
		}
	}

	for _, rootID := range f.roots {
		f.repairSubtree(rootID)
	}
	for _, id := range f.order {
		recount(f.byID[id])
		ensureSlices(f.byID[id])
	}
	return f, repaired
}

// Validate checks every hierarchy and counter invariant over a project collection
// and reports all violations joined under ErrInconsistentHierarchy.
func Validate(projects []Project) error {
	byID := make(map[string]*Project, len(projects))
	for i := range projects {
		byID[projects[i].ID] = &projects[i]
	}

	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	childrenOf := make(map[string][]string)
	for i := range projects {
		p := &projects[i]
		if slices.Contains(p.Path, p.ID) {
			fail("project %s appears in its own path", p.ID)
		}
		if p.ParentID == nil {
			if len(p.Path) != 0 || p.Level != 0 {
				fail("root project %s has path %v level %d", p.ID, p.Path, p.Level)
			}
		} else {
			parent, ok := byID[*p.ParentID]
			if !ok {
				fail("project %s references missing parent %s", p.ID, *p.ParentID)
			} else {
				want := append(slices.Clone(parent.Path), parent.ID)
				if !slices.Equal(p.Path, want) {
					fail("project %s has path %v, want %v", p.ID, p.Path, want)
				}
				if p.Level != parent.Level+1 {
					fail("project %s has level %d, want %d", p.ID, p.Level, parent.Level+1)
				}
				childrenOf[parent.ID] = append(childrenOf[parent.ID], p.ID)
			}
		}

		total, completed, files, size := counters(p.Items, p.Files)
		if p.TotalItems != total || p.CompletedItems != completed || p.TotalFiles != files || p.TotalSize != size {
			fail("project %s has stale counters", p.ID)
		}
	}

	for i := range projects {
		p := &projects[i]
		got := slices.Clone(p.Children)
		want := slices.Clone(childrenOf[p.ID])
		slices.Sort(got)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			fail("project %s lists children %v, want %v", p.ID, p.Children, childrenOf[p.ID])
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInconsistentHierarchy, errors.Join(errs...))
}

func counters(items []Item, files []File) (total, completed, fileCount int, size int64) {
	for _, it := range items {
		if it.Status == ItemCompleted {
			completed++
		}
	}
	for _, f := range files {
		size += f.Size
	}
	return len(items), completed, len(files), size
}

// recount refreshes the derived item and file counters.
func recount(p *Project) {
	p.TotalItems, p.CompletedItems, p.TotalFiles, p.TotalSize = counters(p.Items, p.Files)
}

func ensureSlices(p *Project) {
	if p.Children == nil {
		p.Children = []string{}
	}
	if p.Path == nil {
		p.Path = []string{}
	}
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	if p.Members == nil {
		p.Members = []Member{}
	}
	if p.Items == nil {
		p.Items = []Item{}
	}
	if p.Files == nil {
		p.Files = []File{}
	}
	if p.Activities == nil {
		p.Activities = []activity.Entry{}
	}
}
