package project

import (
	"cmp"
	"context"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// matcher evaluates filters with Unicode case folding. A cases.Caser is
// stateful, so each query builds its own.
type matcher struct {
	fold cases.Caser
}

func newMatcher() *matcher {
	return &matcher{fold: cases.Fold()}
}

func (m *matcher) contains(haystack, foldedNeedle string) bool {
	if haystack == "" {
		return false
	}
	return strings.Contains(m.fold.String(haystack), foldedNeedle)
}

// matches reports whether p satisfies every criterion set in f.
func (m *matcher) matches(p *Project, f *Filter) bool {
	if f == nil {
		return true
	}

	if f.Search != "" {
		needle := m.fold.String(f.Search)
		hit := m.contains(p.Name, needle) || m.contains(p.Description, needle)
		for i := 0; !hit && i < len(p.Items); i++ {
			hit = m.contains(p.Items[i].Title, needle) || m.contains(p.Items[i].Description, needle)
		}
		if !hit {
			return false
		}
	}
	if len(f.Status) > 0 && !slices.Contains(f.Status, p.Status) {
		return false
	}
	if len(f.Type) > 0 && !slices.Contains(f.Type, p.Type) {
		return false
	}
	if len(f.Priority) > 0 && !slices.Contains(f.Priority, p.Priority) {
		return false
	}
	if f.InterlocutorID != "" && (p.InterlocutorID == nil || *p.InterlocutorID != f.InterlocutorID) {
		return false
	}
	if f.CreatedBy != "" && p.CreatedBy != f.CreatedBy {
		return false
	}
	if f.DateRange != nil {
		if p.CreatedAt.Before(f.DateRange.Start) || p.CreatedAt.After(f.DateRange.End) {
			return false
		}
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(p.Tags, func(t Tag) bool { return slices.Contains(f.Tags, t.ID) }) {
		return false
	}
	if f.HasItems != nil && (len(p.Items) > 0) != *f.HasItems {
		return false
	}
	if f.HasFiles != nil && (len(p.Files) > 0) != *f.HasFiles {
		return false
	}
	return true
}

// filteredLocked returns stored projects matching f, in insertion order.
func (s *Service) filteredLocked(f *Filter) []*Project {
	m := newMatcher()
	out := make([]*Project, 0, len(s.tree.order))
	for _, id := range s.tree.order {
		if p := s.tree.byID[id]; m.matches(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// List returns the projects matching f, ordered by sortOpts or by insertion order.
// Equal keys keep insertion order.
func (s *Service) List(_ context.Context, f *Filter, sortOpts *SortOptions) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := s.filteredLocked(f)
	if sortOpts != nil && sortOpts.Field != "" {
		fold := cases.Fold()
		desc := sortOpts.Direction == SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareBy(fold, sortOpts.Field, matched[i], matched[j])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	out := make([]Project, 0, len(matched))
	for _, p := range matched {
		out = append(out, p.Clone())
	}
	return out
}

func compareBy(fold cases.Caser, field SortField, a, b *Project) int {
	switch field {
	case SortByName:
		return strings.Compare(fold.String(a.Name), fold.String(b.Name))
	case SortByCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case SortByUpdatedAt:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	case SortByLastActivity:
		return a.LastActivity.Compare(b.LastActivity)
	case SortByPriority:
		return cmp.Compare(a.Priority.Rank(), b.Priority.Rank())
	case SortByStatus:
		return strings.Compare(string(a.Status), string(b.Status))
	case SortByTotalItems:
		return cmp.Compare(a.TotalItems, b.TotalItems)
	default:
		return 0
	}
}

// GetTree materialises the filtered forest. A project whose parent is filtered
// out is not attached anywhere.
func (s *Service) GetTree(_ context.Context, f *Filter) []*TreeNode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	survivors := make(map[string]bool)
	for _, p := range s.filteredLocked(f) {
		survivors[p.ID] = true
	}

	var build func(p *Project) *TreeNode
	build = func(p *Project) *TreeNode {
		node := &TreeNode{Project: p.Clone(), Children: []*TreeNode{}}
		for _, childID := range p.Children {
			if child := s.tree.byID[childID]; child != nil && survivors[childID] {
				node.Children = append(node.Children, build(child))
			}
		}
		return node
	}

	roots := []*TreeNode{}
	for _, id := range s.tree.roots {
		if p := s.tree.byID[id]; p != nil && survivors[id] {
			roots = append(roots, build(p))
		}
	}
	return roots
}

// GetNavigation returns breadcrumbs, siblings, parent and children of a project.
// Ancestors that no longer exist are skipped.
func (s *Service) GetNavigation(_ context.Context, id string) (*Navigation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	proj, ok := s.tree.byID[id]
	if !ok {
		return nil, ErrProjectNotFound
	}

	nav := &Navigation{
		Breadcrumbs: []Breadcrumb{},
		Siblings:    []Project{},
		Children:    []Project{},
	}
	for _, ancestorID := range proj.Path {
		if a := s.tree.byID[ancestorID]; a != nil {
			nav.Breadcrumbs = append(nav.Breadcrumbs, Breadcrumb{ID: a.ID, Name: a.Name, Level: a.Level})
		}
	}
	nav.Breadcrumbs = append(nav.Breadcrumbs, Breadcrumb{ID: proj.ID, Name: proj.Name, Level: proj.Level})

	if parent := s.tree.parentOf(proj); parent != nil {
		c := parent.Clone()
		nav.Parent = &c
	}

	for _, otherID := range s.tree.order {
		other := s.tree.byID[otherID]
		switch {
		case other.ID == proj.ID:
		case sameParent(other, proj):
			nav.Siblings = append(nav.Siblings, other.Clone())
		case other.ParentID != nil && *other.ParentID == proj.ID:
			nav.Children = append(nav.Children, other.Clone())
		}
	}
	return nav, nil
}

func sameParent(a, b *Project) bool {
	if a.ParentID == nil || b.ParentID == nil {
		return a.ParentID == nil && b.ParentID == nil
	}
	return *a.ParentID == *b.ParentID
}

// Search matches query against names, descriptions, item text, tag names and
// member names, case-insensitively.
func (s *Service) Search(_ context.Context, query string) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m := newMatcher()
	needle := m.fold.String(query)

	out := []Project{}
	for _, id := range s.tree.order {
		p := s.tree.byID[id]
		if m.searchHit(p, needle) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (m *matcher) searchHit(p *Project, needle string) bool {
	if m.contains(p.Name, needle) || m.contains(p.Description, needle) {
		return true
	}
	for _, it := range p.Items {
		if m.contains(it.Title, needle) || m.contains(it.Description, needle) {
			return true
		}
	}
	for _, t := range p.Tags {
		if m.contains(t.Name, needle) {
			return true
		}
	}
	for _, mem := range p.Members {
		if m.contains(mem.Name, needle) {
			return true
		}
	}
	return false
}
