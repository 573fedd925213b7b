package project

import (
	"context"
	"fmt"
	"slices"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
)

// Move re-parents source relative to target. MoveInto makes target the new parent;
// MoveBefore and MoveAfter make source a sibling placed next to target, at root
// level included. Every check runs before any state changes.
func (s *Service) Move(ctx context.Context, sourceID, targetID string, op MoveOperation) (p *Project, err error) {
	defer func() { s.observe("move", err) }()

	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMoveOperation, op)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.tree.byID[sourceID]
	if !ok {
		return nil, fmt.Errorf("%w: source %s", ErrProjectNotFound, sourceID)
	}
	target, ok := s.tree.byID[targetID]
	if !ok {
		return nil, fmt.Errorf("%w: target %s", ErrProjectNotFound, targetID)
	}
	if source.ID == target.ID || s.tree.isAncestor(source.ID, target) {
		return nil, ErrCyclicMove
	}

	now := s.now()
	oldParent := s.tree.parentOf(source)

	s.tree.detach(source)
	if oldParent != nil {
		oldParent.UpdatedAt = now
	}

	var newParent *Project
	switch op {
	case MoveInto:
		newParent = target
		source.ParentID = clonePtr(&target.ID)
		target.Children = append(target.Children, source.ID)
	case MoveBefore, MoveAfter:
		newParent = s.tree.parentOf(target)
		source.ParentID = clonePtr(target.ParentID)
		siblings := s.tree.siblingsOf(target)
		idx := slices.Index(*siblings, target.ID)
		if op == MoveAfter {
			idx++
		}
		*siblings = slices.Insert(*siblings, idx, source.ID)
	}
	if newParent != nil {
		newParent.UpdatedAt = now
	}

	s.tree.repairSubtree(source.ID)

	from := "root"
	if oldParent != nil {
		from = oldParent.ID
	}
	to := "root"
	if newParent != nil {
		to = newParent.ID
	}
	source.UpdatedAt = now
	source.LastActivity = now
	source.Activities = append(source.Activities, activity.NewEntry(
		activity.TypeMoved,
		fmt.Sprintf("Project moved (%s %s)", op, target.Name),
		activity.ActorFromContext(ctx), now,
		map[string]string{"operation": string(op), "targetId": target.ID, "from": from, "to": to},
	))

	s.logger.Debug("moved project", "project_id", source.ID, "target_id", target.ID, "operation", op)
	s.persistLocked(ctx)

	out := source.Clone()
	return &out, nil
}

// detach unlinks p from its current sibling list without touching ParentID.
func (f *forest) detach(p *Project) {
	siblings := f.siblingsOf(p)
	*siblings = slices.DeleteFunc(*siblings, func(id string) bool { return id == p.ID })
}
