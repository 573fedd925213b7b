package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/activity"
	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ProjectService defines the project operations served over REST.
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

// Options configures the router.
type Options struct {
	Projects     ProjectService
	MCP          http.Handler // mounted at /mcp when set
	Logger       *slog.Logger
	DefaultActor string
	RateLimit    RateLimitConfig
}

// Server wires HTTP handlers.
type Server struct {
	projects ProjectService
	logger   *slog.Logger
}

// NewServer creates the HTTP router with middleware.
func NewServer(opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{projects: opts.Projects, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(PrometheusMiddleware)

	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(ActorMiddleware(opts.DefaultActor))
		r.Use(RateLimit(NewRateLimiter(opts.RateLimit)))

		if opts.MCP != nil {
			r.Handle("/mcp", opts.MCP)
			r.Handle("/mcp/*", opts.MCP)
		}

		r.Route("/api/v1/projects", func(r chi.Router) {
			r.Get("/", srv.listProjects)
			r.Post("/", srv.createProject)
			r.Get("/tree", srv.projectTree)
			r.Get("/search", srv.searchProjects)
			r.Get("/statistics", srv.statistics)
			r.Get("/activity", srv.recentActivity)
			r.Get("/export.xlsx", srv.exportProjects)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", srv.getProject)
				r.Patch("/", srv.updateProject)
				r.Delete("/", srv.deleteProject)
				r.Post("/move", srv.moveProject)
				r.Get("/navigation", srv.navigation)
				r.Post("/items", srv.addItem)
				r.Delete("/items/{itemID}", srv.removeItem)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
