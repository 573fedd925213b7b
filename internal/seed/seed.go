// Package seed fills a project store with random project trees for local demos.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/brianvoe/gofakeit/v6"
)

// Store is the write side of the project store used by the generator.
type Store interface {
	Create(ctx context.Context, req project.CreateRequest) (*project.Project, error)
	AddItem(ctx context.Context, projectID string, in project.ItemInput) (*project.Item, error)
}

// Options shape the generated forest.
type Options struct {
	Roots       int
	MaxDepth    int
	MaxChildren int
	MaxItems    int
	Seed        int64
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{Roots: 5, MaxDepth: 2, MaxChildren: 3, MaxItems: 4}
}

// Result summarises a generation run.
type Result struct {
	RootIDs  []string
	Projects int
	Items    int
}

var (
	priorities = []project.Priority{project.PriorityLow, project.PriorityMedium, project.PriorityHigh, project.PriorityUrgent}
	itemTypes  = []project.ItemType{project.ItemQuote, project.ItemContract, project.ItemClaim, project.ItemDocument, project.ItemTask, project.ItemNote}
	itemStates = []project.ItemStatus{project.ItemPending, project.ItemInProgress, project.ItemCompleted, project.ItemCancelled}
	roles      = []string{"owner", "editor", "viewer"}
)

// Generator creates random projects through the store so every invariant holds.
type Generator struct {
	store Store
	faker *gofakeit.Faker
	opts  Options
	now   func() time.Time
}

// NewGenerator creates a generator. A zero Seed picks a random one.
func NewGenerator(store Store, opts Options) *Generator {
	def := DefaultOptions()
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	if opts.MaxChildren <= 0 {
		opts.MaxChildren = def.MaxChildren
	}
	if opts.MaxItems < 0 {
		opts.MaxItems = 0
	}
	return &Generator{
		store: store,
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
		now:   time.Now,
	}
}

// Generate creates opts.Roots project trees and returns what was created.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	var res Result
	for range g.opts.Roots {
		id, err := g.tree(ctx, nil, 0, &res)
		if err != nil {
			return res, err
		}
		res.RootIDs = append(res.RootIDs, id)
	}
	return res, nil
}

func (g *Generator) tree(ctx context.Context, parentID *string, depth int, res *Result) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f := g.faker
	owner := f.Name()
	ctx = activity.WithActor(ctx, f.Username())

	req := project.CreateRequest{
		Name:        fmt.Sprintf("%s %s", f.Company(), f.BuzzWord()),
		Description: f.Sentence(10),
		Type:        project.Types[f.Number(0, len(project.Types)-1)],
		Status:      project.Statuses[f.Number(0, len(project.Statuses)-1)],
		Priority:    priorities[f.Number(0, len(priorities)-1)],
		ParentID:    parentID,
		Tags:        g.tags(),
		Members: []project.Member{{
			UserID:      f.UUID(),
			Name:        owner,
			Role:        roles[f.Number(0, len(roles)-1)],
			Permissions: []string{"read", "write"},
			JoinedAt:    g.now(),
		}},
		Files: g.files(),
	}
	if req.Status == project.StatusCompleted {
		start := f.DateRange(g.now().AddDate(-1, 0, 0), g.now().AddDate(0, -1, 0))
		end := start.AddDate(0, 0, f.Number(1, 60))
		req.StartDate, req.EndDate = &start, &end
	}

	proj, err := g.store.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}
	res.Projects++

	for range f.Number(0, g.opts.MaxItems) {
		if _, err := g.store.AddItem(ctx, proj.ID, project.ItemInput{
			Type:        itemTypes[f.Number(0, len(itemTypes)-1)],
			Title:       f.HipsterSentence(4),
			Description: f.Sentence(8),
			Status:      itemStates[f.Number(0, len(itemStates)-1)],
		}); err != nil {
			return "", fmt.Errorf("add item to %s: %w", proj.ID, err)
		}
		res.Items++
	}

	if depth >= g.opts.MaxDepth {
		return proj.ID, nil
	}
	for range f.Number(0, g.opts.MaxChildren) {
		if _, err := g.tree(ctx, &proj.ID, depth+1, res); err != nil {
			return "", err
		}
	}
	return proj.ID, nil
}

func (g *Generator) tags() []project.Tag {
	n := g.faker.Number(0, 2)
	tags := make([]project.Tag, 0, n)
	for range n {
		word := g.faker.Word()
		tags = append(tags, project.Tag{ID: "tag-" + word, Name: word, Color: g.faker.HexColor()})
	}
	return tags
}

func (g *Generator) files() []project.File {
	n := g.faker.Number(0, 2)
	files := make([]project.File, 0, n)
	for range n {
		ext := g.faker.FileExtension()
		name := g.faker.Word() + "." + ext
		files = append(files, project.File{
			Name:     name,
			MimeType: g.faker.FileMimeType(),
			Size:     int64(g.faker.Number(1_000, 5_000_000)),
			URL:      "/files/" + name,
		})
	}
	return files
}
