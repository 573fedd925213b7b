package project

import "context"

// Snapshot is the persisted form of the forest: every project in insertion
// order plus the explicit display order of the roots.
type Snapshot struct {
	Projects []Project `json:"projects"`
	Roots    []string  `json:"roots"`
}

// Repository persists the whole project collection as one snapshot.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// Observer receives store operation outcomes, e.g. for metrics.
type Observer interface {
	ObserveOperation(op string, err error)
	SetProjectCount(n int)
}
