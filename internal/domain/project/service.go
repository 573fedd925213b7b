package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/repository"
	"github.com/google/uuid"
)

// Service owns the project forest and keeps its hierarchy metadata consistent.
// Every successful mutation is followed by a snapshot save through the Repository.
type Service struct {
	mu       sync.RWMutex
	tree     *forest
	repo     Repository
	logger   *slog.Logger
	observer Observer
	now      func() time.Time
	demo     bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithObserver reports operation outcomes to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithDemoFallback controls whether Load falls back to the demo dataset.
func WithDemoFallback(enabled bool) Option {
	return func(s *Service) { s.demo = enabled }
}

// NewService creates a new project service with an empty forest.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		tree:   newForest(),
		repo:   repo,
		logger: logger,
		now:    time.Now,
		demo:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateRequest describes a project creation request.
type CreateRequest struct {
	Name           string
	Description    string
	Type           Type
	Status         Status
	Priority       Priority
	ParentID       *string
	InterlocutorID *string
	Tags           []Tag
	Members        []Member
	Items          []Item
	Files          []File
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedBy      string
}

// UpdateRequest patches descriptive fields. Nil fields are left unchanged.
// Hierarchy fields are not patchable here; use Move.
type UpdateRequest struct {
	Name           *string
	Description    *string
	Type           *Type
	Status         *Status
	Priority       *Priority
	InterlocutorID *string
	Tags           *[]Tag
	Members        *[]Member
	Items          *[]Item
	Files          *[]File
	StartDate      *time.Time
	EndDate        *time.Time
}

// ItemInput describes an item added to a project.
type ItemInput struct {
	Type        ItemType
	Title       string
	Description string
	Status      ItemStatus
	Metadata    map[string]any
}

// Load replaces the forest with the persisted snapshot. A failed or empty read
// falls back to the demo dataset when enabled; loaded data is normalised.
func (s *Service) Load(ctx context.Context) {
	var snap Snapshot
	if s.repo != nil {
		loaded, err := s.repo.Load(ctx)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			s.logger.Error("failed to load projects, using fallback", "error", err)
		default:
			snap = loaded
		}
	}

	if len(snap.Projects) == 0 && s.demo {
		snap = Snapshot{Projects: DemoProjects(s.now())}
		s.logger.Info("no stored projects, loaded demo dataset", "count", len(snap.Projects))
	}

	tree, repaired := buildForest(snap)
	if repaired > 0 {
		s.logger.Warn("repaired inconsistent project hierarchy", "links", repaired)
	}

	s.mu.Lock()
	s.tree = tree
	s.mu.Unlock()
	s.setCount(len(tree.order))
}

// Create creates a new project, linking it under its parent when one is given.
func (s *Service) Create(ctx context.Context, req CreateRequest) (p *Project, err error) {
	defer func() { s.observe("create", err) }()

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var parent *Project
	if req.ParentID != nil {
		parent = s.tree.byID[*req.ParentID]
		if parent == nil {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, *req.ParentID)
		}
	}

	now := s.now()
	actor := req.CreatedBy
	if actor == "" {
		actor = activity.ActorFromContext(ctx)
	}

	proj := &Project{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Type:           defaultValue(req.Type, TypeOther),
		Status:         defaultValue(req.Status, StatusDraft),
		Priority:       defaultValue(req.Priority, PriorityMedium),
		ParentID:       clonePtr(req.ParentID),
		Children:       []string{},
		Path:           []string{},
		InterlocutorID: clonePtr(req.InterlocutorID),
		Tags:           cloneSlice(req.Tags),
		Members:        cloneSlice(req.Members),
		Items:          prepareItems(req.Items, actor, now),
		Files:          prepareFiles(req.Files, actor, now),
		StartDate:      clonePtr(req.StartDate),
		EndDate:        clonePtr(req.EndDate),
		CreatedBy:      actor,
		CreatedAt:      now,
		UpdatedAt:      now,
		LastActivity:   now,
	}
	if parent != nil {
		proj.Path = append(slices.Clone(parent.Path), parent.ID)
		proj.Level = parent.Level + 1
		parent.Children = append(parent.Children, proj.ID)
		parent.UpdatedAt = now
	}
	recount(proj)
	ensureSlices(proj)
	proj.Activities = append(proj.Activities, activity.NewEntry(
		activity.TypeCreated,
		fmt.Sprintf("Project %q created", proj.Name),
		actor, now, nil,
	))

	s.tree.add(proj)
	s.persistLocked(ctx)

	out := proj.Clone()
	return &out, nil
}

// Get returns a copy of the project with the given ID.
func (s *Service) Get(_ context.Context, id string) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.tree.byID[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	out := p.Clone()
	return &out, nil
}

// GetAll returns a snapshot of every project in insertion order.
func (s *Service) GetAll(_ context.Context) []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tree.projects()
}

// Update merges the given fields into a project and records which fields changed.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (p *Project, err error) {
	defer func() { s.observe("update", err) }()

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be blank", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.tree.byID[id]
	if !ok {
		return nil, ErrProjectNotFound
	}

	now := s.now()
	actor := activity.ActorFromContext(ctx)
	var changed []string

	if req.Name != nil {
		proj.Name = *req.Name
		changed = append(changed, "name")
	}
	if req.Description != nil {
		proj.Description = *req.Description
		changed = append(changed, "description")
	}
	if req.Type != nil {
		proj.Type = *req.Type
		changed = append(changed, "type")
	}
	if req.Status != nil {
		proj.Status = *req.Status
		changed = append(changed, "status")
	}
	if req.Priority != nil {
		proj.Priority = *req.Priority
		changed = append(changed, "priority")
	}
	if req.InterlocutorID != nil {
		proj.InterlocutorID = clonePtr(req.InterlocutorID)
		if *req.InterlocutorID == "" {
			proj.InterlocutorID = nil
		}
		changed = append(changed, "interlocutorId")
	}
	if req.Tags != nil {
		proj.Tags = cloneSlice(*req.Tags)
		changed = append(changed, "tags")
	}
	if req.Members != nil {
		proj.Members = cloneSlice(*req.Members)
		changed = append(changed, "members")
	}
	if req.Items != nil {
		proj.Items = prepareItems(*req.Items, actor, now)
		changed = append(changed, "items")
	}
	if req.Files != nil {
		proj.Files = prepareFiles(*req.Files, actor, now)
		changed = append(changed, "files")
	}
	if req.StartDate != nil {
		proj.StartDate = clonePtr(req.StartDate)
		changed = append(changed, "startDate")
	}
	if req.EndDate != nil {
		proj.EndDate = clonePtr(req.EndDate)
		changed = append(changed, "endDate")
	}

	recount(proj)
	proj.UpdatedAt = now
	proj.LastActivity = now
	proj.Activities = append(proj.Activities, activity.NewEntry(
		activity.TypeUpdated,
		fmt.Sprintf("Project updated: %s", strings.Join(changed, ", ")),
		actor, now,
		map[string]string{"fields": strings.Join(changed, ",")},
	))

	s.persistLocked(ctx)

	out := proj.Clone()
	return &out, nil
}

// Delete removes a project and its whole subtree.
func (s *Service) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.observe("delete", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.tree.byID[id]
	if !ok {
		return ErrProjectNotFound
	}

	now := s.now()
	doomed := s.tree.subtree(id)

	if parent := s.tree.parentOf(proj); parent != nil {
		parent.Children = slices.DeleteFunc(parent.Children, func(c string) bool { return c == id })
		parent.UpdatedAt = now
		parent.LastActivity = now
		parent.Activities = append(parent.Activities, activity.NewEntry(
			activity.TypeDeleted,
			fmt.Sprintf("Sub-project %q deleted", proj.Name),
			activity.ActorFromContext(ctx), now,
			map[string]string{"projectId": id, "removed": fmt.Sprint(len(doomed))},
		))
	}

	s.tree.remove(doomed)
	s.logger.Debug("deleted project subtree", "project_id", id, "removed", len(doomed))
	s.persistLocked(ctx)
	return nil
}

// AddItem appends an item to a project.
func (s *Service) AddItem(ctx context.Context, projectID string, in ItemInput) (it *Item, err error) {
	defer func() { s.observe("add_item", err) }()

	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: item title is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.tree.byID[projectID]
	if !ok {
		return nil, ErrProjectNotFound
	}

	now := s.now()
	actor := activity.ActorFromContext(ctx)
	item := Item{
		ID:          uuid.NewString(),
		Type:        defaultValue(in.Type, ItemOther),
		Title:       in.Title,
		Description: in.Description,
		Status:      defaultValue(in.Status, ItemPending),
		Metadata:    in.Metadata,
		CreatedBy:   actor,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	proj.Items = append(proj.Items, item)
	proj.TotalItems++
	if item.Status == ItemCompleted {
		proj.CompletedItems++
	}
	proj.UpdatedAt = now
	proj.LastActivity = now
	proj.Activities = append(proj.Activities, activity.NewEntry(
		activity.TypeCreated,
		fmt.Sprintf("Item %q added", item.Title),
		actor, now,
		map[string]string{"itemId": item.ID, "itemType": string(item.Type)},
	))

	s.persistLocked(ctx)
	return &item, nil
}

// RemoveItem removes an item from a project.
func (s *Service) RemoveItem(ctx context.Context, projectID, itemID string) (err error) {
	defer func() { s.observe("remove_item", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	proj, ok := s.tree.byID[projectID]
	if !ok {
		return ErrProjectNotFound
	}
	idx := slices.IndexFunc(proj.Items, func(it Item) bool { return it.ID == itemID })
	if idx < 0 {
		return ErrItemNotFound
	}

	now := s.now()
	item := proj.Items[idx]
	proj.Items = slices.Delete(proj.Items, idx, idx+1)
	proj.TotalItems--
	if item.Status == ItemCompleted {
		proj.CompletedItems--
	}
	proj.UpdatedAt = now
	proj.LastActivity = now
	proj.Activities = append(proj.Activities, activity.NewEntry(
		activity.TypeDeleted,
		fmt.Sprintf("Item %q removed", item.Title),
		activity.ActorFromContext(ctx), now,
		map[string]string{"itemId": item.ID, "itemType": string(item.Type)},
	))

	s.persistLocked(ctx)
	return nil
}

// persistLocked saves the snapshot; failures are logged and never surfaced.
func (s *Service) persistLocked(ctx context.Context) {
	s.setCount(len(s.tree.order))
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, s.tree.snapshot()); err != nil {
		s.logger.Error("failed to save projects", "error", err)
		s.observe("save", err)
	}
}

func (s *Service) observe(op string, err error) {
	if s.observer != nil {
		s.observer.ObserveOperation(op, err)
	}
}

func (s *Service) setCount(n int) {
	if s.observer != nil {
		s.observer.SetProjectCount(n)
	}
}

func prepareItems(items []Item, actor string, now time.Time) []Item {
	out := cloneSlice(items)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].Status == "" {
			out[i].Status = ItemPending
		}
		if out[i].Type == "" {
			out[i].Type = ItemOther
		}
		if out[i].CreatedBy == "" {
			out[i].CreatedBy = actor
		}
		if out[i].CreatedAt.IsZero() {
			out[i].CreatedAt = now
		}
		if out[i].UpdatedAt.IsZero() {
			out[i].UpdatedAt = now
		}
	}
	return out
}

func prepareFiles(files []File, actor string, now time.Time) []File {
	out := cloneSlice(files)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = uuid.NewString()
		}
		if out[i].UploadedBy == "" {
			out[i].UploadedBy = actor
		}
		if out[i].UploadedAt.IsZero() {
			out[i].UploadedAt = now
		}
	}
	return out
}

func defaultValue[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}
